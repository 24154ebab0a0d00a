package session

import "github.com/benedictjohannes/mpd-config-switcher/internal/api"

// ConfigTarget is a switchable mode. Identity is Key.
type ConfigTarget = api.ConfigTarget

var (
	// LoadingMode is shown before the first poll resolves
	LoadingMode = ConfigTarget{Key: "", Name: "Loading..."}

	// UnknownMode replaces the current mode when a poll fails, so stale data
	// is never displayed silently
	UnknownMode = ConfigTarget{Key: "unknown", Name: "Unknown"}
)

// RegistryPhase distinguishes a registry that has not loaded yet from one
// that loaded empty or failed to load.
type RegistryPhase int

const (
	RegistryLoading RegistryPhase = iota // fetch not resolved yet
	RegistryReady                        // loaded, possibly with zero targets
	RegistryFailed                       // fetch failed; final for the session
)

// String returns the phase name
func (p RegistryPhase) String() string {
	switch p {
	case RegistryLoading:
		return "loading"
	case RegistryReady:
		return "ready"
	case RegistryFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// Registry is the ordered set of switchable targets for the session.
// Targets must not be modified after the registry is built.
type Registry struct {
	Phase   RegistryPhase
	Targets []ConfigTarget
}

// Empty reports whether the registry loaded successfully with no targets
func (r Registry) Empty() bool {
	return r.Phase == RegistryReady && len(r.Targets) == 0
}

// Lookup returns the target with key
func (r Registry) Lookup(key string) (ConfigTarget, bool) {
	for _, t := range r.Targets {
		if t.Key == key {
			return t, true
		}
	}
	return ConfigTarget{}, false
}

// State is one immutable snapshot of the session. A new value replaces the
// old one on every event; nothing updates a State in place.
type State struct {
	Registry Registry
	Current  ConfigTarget

	// Busy is true from the moment a switch starts until its confirmation
	// poll resolves. While set, no other switch may start.
	Busy bool

	// Pending is the target of the in-flight switch (zero when idle)
	Pending ConfigTarget

	// Status is the most recent outcome or progress message. Only a new
	// event changes it.
	Status string

	// Failure is true when Status reports an error
	Failure bool
}

// NewState returns the state a session starts in
func NewState() State {
	return State{
		Registry: Registry{Phase: RegistryLoading},
		Current:  LoadingMode,
	}
}
