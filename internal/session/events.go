package session

// Event is an input to the reducer. Every change to State is the result of
// exactly one Event.
type Event interface {
	// Name identifies the event in logs
	Name() string
}

// RegistryLoaded carries the result of the one-shot registry fetch
type RegistryLoaded struct {
	Targets []ConfigTarget
}

// RegistryLoadFailed reports that the registry fetch failed
type RegistryLoadFailed struct {
	Err error
}

// PollSucceeded carries an authoritative current mode. Forced marks the
// confirmation poll issued after a successful switch.
type PollSucceeded struct {
	Mode   ConfigTarget
	Forced bool
}

// PollFailed reports a failed current-mode fetch
type PollFailed struct {
	Err    error
	Forced bool
}

// SwitchRequested is the operator asking to activate Target
type SwitchRequested struct {
	Target ConfigTarget
}

// SwitchSucceeded carries the backend's confirmation message
type SwitchSucceeded struct {
	Target  ConfigTarget
	Message string
}

// SwitchFailed reports a rejected or failed switch
type SwitchFailed struct {
	Target ConfigTarget
	Err    error
}

func (RegistryLoaded) Name() string     { return "registry_loaded" }
func (RegistryLoadFailed) Name() string { return "registry_failed" }
func (SwitchRequested) Name() string    { return "switch_requested" }
func (SwitchSucceeded) Name() string    { return "switch_succeeded" }
func (SwitchFailed) Name() string       { return "switch_failed" }

func (e PollSucceeded) Name() string {
	if e.Forced {
		return "confirm_poll_succeeded"
	}
	return "poll_succeeded"
}

func (e PollFailed) Name() string {
	if e.Forced {
		return "confirm_poll_failed"
	}
	return "poll_failed"
}

// EffectKind identifies work the engine must start after a reducer step
type EffectKind int

const (
	// EffectSwitch calls the switch route for Effect.Target
	EffectSwitch EffectKind = iota + 1
	// EffectConfirmPoll runs one out-of-band poll whose result ends the busy window
	EffectConfirmPoll
)

// Effect is a side effect requested by the reducer
type Effect struct {
	Kind   EffectKind
	Target ConfigTarget
}
