// Package ui renders the output of the one-shot mpdswitch commands.
//
// Unlike the interactive TUI, these components follow a "print once and
// exit" pattern: a Header naming the command, a Result box for the outcome
// and plain marker lists for targets and discovered hosts.
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Switch Mode", "mpdswitch switch pipewire",
//	    ui.Detail{Key: "Server", Value: server})
//	p.PrintSuccess("Switched to PipeWire",
//	    ui.Detail{Key: "Current", Value: "PipeWire"})
//
// Box widths follow the terminal (golang.org/x/term), clamped between
// MinTerminalWidth and MaxContentWidth.
package ui
