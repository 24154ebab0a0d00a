package session

import (
	"fmt"

	"github.com/benedictjohannes/mpd-config-switcher/internal/api"
)

// Status message formats
const (
	statusSwitching     = "Switching to %s..."
	statusSwitched      = "Switched to %s"
	statusSwitchError   = "Error switching mode: %s"
	statusPollError     = "Error fetching mode: %s"
	statusRegistryError = "Error fetching config parts: %s"
)

// Reduce applies one event to s and returns the next snapshot together with
// the effects the engine must start. It is pure: the same inputs always give
// the same outputs.
func Reduce(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case RegistryLoaded:
		targets := make([]ConfigTarget, len(e.Targets))
		copy(targets, e.Targets)
		s.Registry = Registry{Phase: RegistryReady, Targets: targets}
		return s, nil

	case RegistryLoadFailed:
		s.Registry = Registry{Phase: RegistryFailed}
		s.Status = fmt.Sprintf(statusRegistryError, api.ShortMessage(e.Err))
		s.Failure = true
		return s, nil

	case PollSucceeded:
		s.Current = e.Mode
		if e.Forced {
			s = endSwitch(s)
		}
		return s, nil

	case PollFailed:
		s.Current = UnknownMode
		s.Status = fmt.Sprintf(statusPollError, api.ShortMessage(e.Err))
		s.Failure = true
		if e.Forced {
			s = endSwitch(s)
		}
		return s, nil

	case SwitchRequested:
		if s.Busy {
			return s, nil
		}
		s.Busy = true
		s.Pending = e.Target
		s.Status = fmt.Sprintf(statusSwitching, e.Target.Name)
		s.Failure = false
		return s, []Effect{{Kind: EffectSwitch, Target: e.Target}}

	case SwitchSucceeded:
		if !s.Busy || s.Pending.Key != e.Target.Key {
			return s, nil
		}
		s.Status = e.Message
		s.Failure = false
		if s.Status == "" {
			s.Status = fmt.Sprintf(statusSwitched, e.Target.Name)
		}
		return s, []Effect{{Kind: EffectConfirmPoll, Target: e.Target}}

	case SwitchFailed:
		if !s.Busy || s.Pending.Key != e.Target.Key {
			return s, nil
		}
		s.Status = fmt.Sprintf(statusSwitchError, api.ShortMessage(e.Err))
		s.Failure = true
		return endSwitch(s), nil
	}

	return s, nil
}

func endSwitch(s State) State {
	s.Busy = false
	s.Pending = ConfigTarget{}
	return s
}
