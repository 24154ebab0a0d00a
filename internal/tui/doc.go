// Package tui implements the interactive switcher screen.
//
// Built on Bubble Tea, the screen is a pure renderer of session.View: it
// shows the current mode, one switch button per registry target, the
// registry notice when there are no buttons, and the latest status. Input
// maps to exactly one engine call, SwitchTo.
//
// # Engine Integration
//
// The engine publishes State snapshots on a channel. waitForSnapshot turns
// one receive into a tea.Msg, and the model re-arms it after each delivery,
// so the program always reflects the newest snapshot without polling.
// Closing the screen closes the engine, which stops the poller and cancels
// any in-flight request.
//
// # Usage Example
//
//	engine := session.NewEngine(client)
//	engine.Start(ctx)
//	if err := tui.Run(engine, client.BaseURL); err != nil {
//	    log.Fatal(err)
//	}
//
// # Key Bindings
//
//   - ↑/k, ↓/j: move between targets
//   - enter: switch to the highlighted target
//   - ?: toggle full help
//   - q, esc, ctrl+c: quit
package tui
