// Mpdswitch switches an MPD host between output configurations.
//
// It talks to the switcher backend running next to MPD, which swaps the
// active configuration part and restarts the daemon. The tool provides an
// interactive screen, one-shot commands for scripts, a headless watch mode
// and mDNS discovery of backends on the local network.
//
// Usage:
//
//	mpdswitch [command] [flags]
//
// Running without arguments launches the interactive screen.
// See 'mpdswitch --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benedictjohannes/mpd-config-switcher/internal/logging"
	"github.com/benedictjohannes/mpd-config-switcher/internal/urls"
	"github.com/benedictjohannes/mpd-config-switcher/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mpdswitch",
	Short: "MPD output mode switcher",
	Long: `Switch an MPD host between output configurations.

The switcher backend runs next to MPD and owns the configuration parts.
This tool shows the current mode, lists the available ones and asks the
backend to switch.

If no command is specified, the interactive screen will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the interactive screen
		return runUI(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mpdswitch %s\n", version.Full())
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", urls.Repository)
	},
}
