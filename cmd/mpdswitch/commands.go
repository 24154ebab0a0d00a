package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/benedictjohannes/mpd-config-switcher/internal/api"
	"github.com/benedictjohannes/mpd-config-switcher/internal/config"
	"github.com/benedictjohannes/mpd-config-switcher/internal/discovery"
	"github.com/benedictjohannes/mpd-config-switcher/internal/session"
	"github.com/benedictjohannes/mpd-config-switcher/internal/tui"
	"github.com/benedictjohannes/mpd-config-switcher/internal/ui"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
)

// Command flags
var (
	outputFormat string
	scanWait     int
	scanSave     bool
)

func init() {
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scanCmd)
}

// uiCmd launches the interactive screen
var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive switcher",
	Long: `Launch the interactive switcher screen.

The screen shows the current mode, refreshed in the background, and one
button per available configuration. Select a button and press enter to
switch. This is the default when no command is given.`,
	Example: `  # Local backend
  mpdswitch

  # Backend on another host, refreshed every 2 seconds
  mpdswitch ui --server http://192.168.1.20:6279 --poll-interval 2s

  # Keep a debug log while the screen runs
  mpdswitch --log-level debug --log-file /tmp/mpdswitch.log`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	engine := session.NewEngine(newClient(s), session.WithPollInterval(s.PollInterval))
	engine.Start(cmd.Context())
	return tui.Run(engine, s.Server)
}

// statusCmd prints the current mode once
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current mode",
	Long: `Ask the backend for the active configuration and print it.

Exits non-zero when the backend cannot be reached.`,
	Example: `  mpdswitch status

  # JSON output for scripting
  mpdswitch status --format json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&outputFormat, "format", formatText, "Output format (text, json)")
}

// statusOutput is the JSON shape of 'status'
type statusOutput struct {
	Server  string           `json:"server"`
	Current api.ConfigTarget `json:"current"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := checkFormat(outputFormat); err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	current, err := newClient(s).CurrentMode(ctx)

	if outputFormat == formatJSON {
		if err != nil {
			return fmt.Errorf("failed to get current mode: %w", err)
		}
		return writeJSON(cmd.OutOrStdout(), statusOutput{Server: s.Server, Current: current})
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if err != nil {
		return reportError(p, "Could not read the current mode", err)
	}
	p.PrintSuccess("Current mode: "+displayName(current),
		ui.Detail{Key: "Key", Value: current.Key},
		ui.Detail{Key: "Server", Value: s.Server},
	)
	return nil
}

// listCmd prints the available modes
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available modes",
	Long: `List the configurations the backend can switch to.

The active mode is marked. The mode keys shown are the arguments accepted
by 'mpdswitch switch'.`,
	Example: `  mpdswitch list

  # JSON output for scripting
  mpdswitch list --format json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&outputFormat, "format", formatText, "Output format (text, json)")
}

// listOutput is the JSON shape of 'list'. Current is omitted when the
// current mode could not be read.
type listOutput struct {
	Server  string             `json:"server"`
	Current *api.ConfigTarget  `json:"current,omitempty"`
	Modes   []api.ConfigTarget `json:"modes"`
}

func runList(cmd *cobra.Command, args []string) error {
	if err := checkFormat(outputFormat); err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	client := newClient(s)
	modes, err := client.ConfigParts(ctx)
	if err != nil {
		if outputFormat == formatJSON {
			return fmt.Errorf("failed to list modes: %w", err)
		}
		return reportError(ui.NewPrinter(cmd.OutOrStdout()), "Could not load the configurations", err)
	}

	// The list is still useful without the marker
	current, curErr := client.CurrentMode(ctx)

	if outputFormat == formatJSON {
		out := listOutput{Server: s.Server, Modes: modes}
		if out.Modes == nil {
			out.Modes = []api.ConfigTarget{}
		}
		if curErr == nil {
			out.Current = &current
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintList(listItems(modes, current, curErr == nil), session.NoticeEmpty)
	if curErr != nil {
		p.Newline()
		p.Println(ui.ListNoteStyle.Render("  Current mode unavailable: " + api.ShortMessage(curErr)))
	}
	return nil
}

// listItems marks the entry whose key matches current
func listItems(modes []api.ConfigTarget, current api.ConfigTarget, known bool) []ui.ListItem {
	items := make([]ui.ListItem, 0, len(modes))
	for _, m := range modes {
		items = append(items, ui.ListItem{
			Label:  m.Name,
			Note:   m.Key,
			Active: known && m.Key == current.Key,
		})
	}
	return items
}

// switchCmd switches to one mode and confirms it
var switchCmd = &cobra.Command{
	Use:   "switch <key>",
	Short: "Switch to a mode",
	Long: `Ask the backend to switch MPD to the configuration with the given key,
then read the current mode back to confirm the switch.

The key must be one of those printed by 'mpdswitch list'. Switching
restarts MPD, so playback stops briefly.`,
	Example: `  mpdswitch switch pipewire

  # Slow host
  mpdswitch switch exclusive --timeout 30s`,
	Args: cobra.ExactArgs(1),
	RunE: runSwitch,
}

func runSwitch(cmd *cobra.Command, args []string) error {
	key := args[0]
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Switch mode", "mpdswitch switch "+key, ui.Detail{Key: "Server", Value: s.Server})

	client := newClient(s)

	modes, err := client.ConfigParts(ctx)
	if err != nil {
		return reportError(p, "Could not load the configurations", err)
	}
	registry := session.Registry{Phase: session.RegistryReady, Targets: modes}
	target, ok := registry.Lookup(key)
	if !ok {
		tips := []string{"Available keys:"}
		for _, m := range modes {
			tips = append(tips, fmt.Sprintf("%s (%s)", m.Key, m.Name))
		}
		if len(modes) == 0 {
			tips = []string{session.NoticeEmpty}
		}
		err := fmt.Errorf("unknown mode %q", key)
		p.PrintError("Switch failed", err, tips)
		return fmt.Errorf("%w: %w", errReported, err)
	}

	message, err := client.Switch(ctx, target.Key)
	if err != nil {
		return reportError(p, "Switch to "+target.Name+" failed", err)
	}
	if message == "" {
		message = "Switched to " + target.Name
	}

	current, err := client.CurrentMode(ctx)
	if err != nil {
		return reportError(p, "Switched, but the current mode could not be confirmed", err)
	}

	details := []ui.Detail{
		{Key: "Message", Value: message},
		{Key: "Current mode", Value: current.String()},
	}
	if current.Key != target.Key {
		p.PrintWarning("Backend reports "+displayName(current)+" after switching", details...)
		return fmt.Errorf("%w: current mode is %s, want %s", errReported, current.Key, target.Key)
	}

	p.PrintSuccess("Switched to "+current.Name, details...)
	return nil
}

// watchCmd runs the session engine without the screen
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print mode changes as they happen",
	Long: `Run the background refresh without the interactive screen and print a
line every time what the screen would show changes.

Runs until interrupted with Ctrl+C.`,
	Example: `  mpdswitch watch

  # Faster refresh
  mpdswitch watch --poll-interval 1s`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	engine := session.NewEngine(newClient(s), session.WithPollInterval(s.PollInterval))
	engine.Start(ctx)
	defer engine.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s every %s (Ctrl+C to stop)\n", s.Server, s.PollInterval)

	var last string
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-engine.Updates():
			if !ok {
				return nil
			}
			line := watchLine(session.Project(st))
			if line == last {
				continue
			}
			last = line
			fmt.Fprintf(out, "%s  %s\n", time.Now().Format("15:04:05"), line)
		}
	}
}

// watchLine summarizes a view on one line
func watchLine(v session.View) string {
	line := "current: " + v.CurrentName
	if v.Affordance == session.AffordanceList {
		line += fmt.Sprintf(" | %d modes", len(v.Buttons))
	} else {
		line += " | " + v.Notice
	}
	if v.Busy {
		line += " | busy"
	}
	if v.Status != "" {
		line += " | " + v.Status
	}
	return line
}

// scanCmd discovers backends on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for switcher backends on the network",
	Long: `Browse for MPD servers using mDNS/DNS-SD (_mpd._tcp) and probe each one
for the switcher API on port 6279.

With --save, a single backend found is written to the config file as the
default server.`,
	Example: `  # Scan for 5 seconds (default)
  mpdswitch scan

  # Longer scan, then remember the backend
  mpdswitch scan --wait 15 --save`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanWait, "wait", 0, "Browse time in seconds (default from config, 5)")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "Save the backend to the config file when exactly one is found")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s, err := resolveSettings(cmd, cfg)
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner()
	scanner.Timeout = s.DiscoverTimeout
	if scanWait > 0 {
		scanner.Timeout = time.Duration(scanWait) * time.Second
	}
	scanner.APIBase = s.APIBase
	if cmd.Flags().Changed(flagTimeout) {
		scanner.ProbeTimeout = s.Timeout
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.Printf("Scanning for MPD hosts (timeout: %s)...\n\n", scanner.Timeout)

	hosts, err := scanner.FindBackends(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(hosts) == 0 {
		p.PrintWarning("No MPD hosts found")
		p.Println("Troubleshooting:")
		p.Println("  - Ensure MPD advertises itself with zeroconf_enabled \"yes\"")
		p.Println("  - Check that this machine is on the same network segment")
		p.Println("  - Try increasing --wait for slower networks")
		p.Println("  - Use --server to specify the backend address manually")
		return nil
	}

	p.PrintList(hostItems(hosts), "")
	p.Newline()

	backends := discovery.Backends(hosts)
	switch {
	case len(backends) == 0:
		p.PrintWarning("No switcher backend answered",
			ui.Detail{Key: "Hosts", Value: fmt.Sprintf("%d", len(hosts))},
			ui.Detail{Key: "Port", Value: fmt.Sprintf("%d", scanner.SwitcherPort)},
		)
		return nil

	case !scanSave:
		p.Println("Use 'mpdswitch --server <url>' to connect, or 'mpdswitch scan --save' to remember a single backend")
		return nil

	case len(backends) > 1:
		return fmt.Errorf("found %d backends; use --server to pick one instead of --save", len(backends))
	}

	cfg.Server = backends[0].BaseURL()
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	path, _ := config.GetConfigPath()
	p.PrintSuccess("Saved default server",
		ui.Detail{Key: "Server", Value: cfg.Server},
		ui.Detail{Key: "Config", Value: path},
	)
	return nil
}

// hostItems lists hosts, marking those that run the switcher
func hostItems(hosts []*discovery.Host) []ui.ListItem {
	items := make([]ui.ListItem, 0, len(hosts))
	for _, h := range hosts {
		note := "MPD only"
		if h.Backend {
			note = h.BaseURL()
		}
		items = append(items, ui.ListItem{
			Label:  h.Instance,
			Note:   note,
			Active: h.Backend,
		})
	}
	return items
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want %s or %s)", format, formatText, formatJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// reportError prints a failure box with troubleshooting advice and returns
// an error main will not print again
func reportError(p *ui.Printer, title string, err error) error {
	p.PrintError(title, err, ui.SplitHint(api.TroubleshootingHint(err)))
	return fmt.Errorf("%w: %w", errReported, err)
}

// displayName is the name shown for a mode, with the backend's unknown
// marker made readable
func displayName(t api.ConfigTarget) string {
	if t.Key == session.UnknownMode.Key {
		return session.UnknownMode.Name
	}
	if t.Name == "" {
		return "[Unknown]"
	}
	return t.Name
}
