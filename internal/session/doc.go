// Package session implements the client-side synchronization engine.
//
// Three flows write the session's notion of "current mode": the one-shot
// registry load, the recurring poll and operator-initiated switches. The
// package reconciles them into one State snapshot that the TUI and the
// headless watcher render from.
//
// # Structure
//
//   - State: immutable snapshot (registry, current mode, busy flag, status)
//   - Reduce: pure function State x Event -> State, []Effect
//   - Project: pure function State -> View (per-target button state)
//   - Poller: cancellable fixed-interval schedule
//   - Engine: the event loop owning State and running effects
//
// # Switch Lifecycle
//
//  1. SwitchRequested is ignored while Busy; otherwise Busy is set and
//     EffectSwitch is emitted.
//  2. SwitchFailed clears Busy and reports the error. Current is untouched.
//  3. SwitchSucceeded shows the backend message and emits
//     EffectConfirmPoll. Busy stays set.
//  4. The confirmation poll's result (success or failure) clears Busy.
//
// Current only ever changes on a poll result. There is no optimistic update.
//
// # Usage Example
//
//	engine := session.NewEngine(api.NewClient(server, "/api"))
//	engine.Start(ctx)
//	defer engine.Close()
//
//	for state := range engine.Updates() {
//	    view := session.Project(state)
//	    fmt.Println(view.CurrentName, view.Status)
//	}
//
// # Thread Safety
//
// Engine methods are safe for concurrent use. All State transitions happen
// on the engine's loop goroutine.
package session
