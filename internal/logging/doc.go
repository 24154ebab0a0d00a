// Package logging provides structured logging for mpdswitch.
//
// This package wraps a global zap logger. Logging is silent by default so the
// TUI and the one-shot command output stay clean; set MPDSWITCH_LOG_LEVEL (or
// pass --log-level) to "debug", "info", "warn" or "error" to enable it.
//
// # Log Levels
//
//   - Debug: every backend request and response, with request ids
//   - Info: applied session events (poll results, switch progress)
//   - Warn: failed backend calls
//   - Error: startup failures
//
// # Output
//
// Logs go to stderr unless MPDSWITCH_LOG_FILE (or --log-file) names a file.
// The interactive TUI draws on the terminal, so a log file is the only useful
// destination while it runs:
//
//	MPDSWITCH_LOG_LEVEL=debug MPDSWITCH_LOG_FILE=/tmp/mpdswitch.log mpdswitch
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once Initialize has run.
package logging
