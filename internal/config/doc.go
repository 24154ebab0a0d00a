// Package config manages the mpdswitch configuration file.
//
// The file stores connection preferences: backend server, API base path,
// poll interval and timeouts. Session state (current mode, registry) is
// never written to disk.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/mpdswitch/config.yaml or $HOME/.config/mpdswitch/config.yaml
//   - macOS: $HOME/.config/mpdswitch/config.yaml
//   - Windows: %LOCALAPPDATA%\mpdswitch\config.yaml
//
// # Example
//
//	version: 1
//	server: http://mpd-box.local:6279
//	api_base: /api
//	poll_interval: 5s
//	timeout: 15s
//	discover_timeout: 5s
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Server = "http://192.168.1.20:6279"
//	if err := cfg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// Writes go to a temporary file that is renamed into place, so a crash never
// leaves a truncated config behind.
package config
