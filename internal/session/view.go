package session

// Affordance names what the registry area of the screen shows
type Affordance int

const (
	AffordanceLoading Affordance = iota // registry still loading
	AffordanceEmpty                     // registry loaded with no targets
	AffordanceFailed                    // registry could not be loaded
	AffordanceList                      // one button per target
)

// Registry area notices
const (
	NoticeLoading = "Loading configurations..."
	NoticeEmpty   = "You have no mpd configurations to switch/activate."
	NoticeFailed  = "Configurations could not be loaded. Restart to try again."
)

// LabelSwitching replaces the label of the target being switched to
const LabelSwitching = "Switching..."

// Button is the derived state of one target's switch control
type Button struct {
	Target ConfigTarget
	Label  string

	// Active is true iff Target is the current mode
	Active bool

	// Disabled is true iff a switch is in flight
	Disabled bool
}

// View is the complete projection of a State for rendering
type View struct {
	CurrentName string
	Affordance  Affordance
	Notice      string // registry notice, empty when Affordance is AffordanceList
	Buttons     []Button
	Busy        bool
	Status      string
	Failure     bool // Status reports an error
}

// Project derives everything the screen shows from s. Renderers must not
// consult anything else.
func Project(s State) View {
	v := View{
		CurrentName: s.Current.Name,
		Busy:        s.Busy,
		Status:      s.Status,
		Failure:     s.Failure,
	}
	if v.CurrentName == "" {
		v.CurrentName = "[Unknown]"
	}

	switch {
	case s.Registry.Phase == RegistryLoading:
		v.Affordance = AffordanceLoading
		v.Notice = NoticeLoading
	case s.Registry.Phase == RegistryFailed:
		v.Affordance = AffordanceFailed
		v.Notice = NoticeFailed
	case len(s.Registry.Targets) == 0:
		v.Affordance = AffordanceEmpty
		v.Notice = NoticeEmpty
	default:
		v.Affordance = AffordanceList
	}

	v.Buttons = make([]Button, 0, len(s.Registry.Targets))
	for _, t := range s.Registry.Targets {
		b := Button{
			Target:   t,
			Label:    "Switch to " + t.Name,
			Active:   t.Key == s.Current.Key,
			Disabled: s.Busy,
		}
		if s.Busy && t.Key == s.Pending.Key {
			b.Label = LabelSwitching
		}
		v.Buttons = append(v.Buttons, b)
	}

	return v
}

// ActiveCount returns how many buttons claim to be current. A consistent
// view has at most one.
func (v View) ActiveCount() int {
	n := 0
	for _, b := range v.Buttons {
		if b.Active {
			n++
		}
	}
	return n
}
