package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/benedictjohannes/mpd-config-switcher/internal/api"
	"github.com/benedictjohannes/mpd-config-switcher/internal/config"
	"github.com/benedictjohannes/mpd-config-switcher/internal/logging"
)

// Persistent flag names
const (
	flagServer       = "server"
	flagAPIBase      = "api-base"
	flagTimeout      = "timeout"
	flagPollInterval = "poll-interval"
	flagLogLevel     = "log-level"
	flagLogFile      = "log-file"
)

// errReported marks an error whose details were already printed as a
// result box. main exits non-zero without printing it again.
var errReported = errors.New("error already reported")

func init() {
	addPersistentFlags(rootCmd)
}

func addPersistentFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String(flagServer, "", "Switcher backend address (default "+api.DefaultServer+")")
	pf.String(flagAPIBase, "", "API route prefix on the backend (default "+api.DefaultAPIBase+")")
	pf.Duration(flagTimeout, 0, "HTTP request timeout (default 15s)")
	pf.Duration(flagPollInterval, 0, "How often the current mode is refreshed (default 5s)")
	pf.String(flagLogLevel, "", "Log level: debug, info, warn, error (default silent)")
	pf.String(flagLogFile, "", "Write logs to this file instead of stderr")
}

// setup runs before every command
func setup(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString(flagLogLevel)
	path, _ := cmd.Flags().GetString(flagLogFile)
	if err := logging.Initialize(level, path); err != nil {
		return err
	}
	return nil
}

// settings are the connection preferences a command runs with
type settings struct {
	Server          string
	APIBase         string
	Timeout         time.Duration
	PollInterval    time.Duration
	DiscoverTimeout time.Duration
}

// loadSettings reads the config file and applies flag overrides
func loadSettings(cmd *cobra.Command) (settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	return resolveSettings(cmd, cfg)
}

// resolveSettings merges cfg with the flags the user set explicitly.
// A flag wins over the file, the file wins over the defaults.
func resolveSettings(cmd *cobra.Command, cfg *config.Config) (settings, error) {
	s := settings{
		Server:          cfg.Server,
		APIBase:         cfg.APIBase,
		Timeout:         cfg.Timeout,
		PollInterval:    cfg.PollInterval,
		DiscoverTimeout: cfg.DiscoverTimeout,
	}

	flags := cmd.Flags()
	if flags.Changed(flagServer) {
		s.Server, _ = flags.GetString(flagServer)
	}
	if flags.Changed(flagAPIBase) {
		s.APIBase, _ = flags.GetString(flagAPIBase)
	}
	if flags.Changed(flagTimeout) {
		s.Timeout, _ = flags.GetDuration(flagTimeout)
		if s.Timeout <= 0 {
			return settings{}, fmt.Errorf("--%s must be positive", flagTimeout)
		}
	}
	if flags.Changed(flagPollInterval) {
		s.PollInterval, _ = flags.GetDuration(flagPollInterval)
		if s.PollInterval <= 0 {
			return settings{}, fmt.Errorf("--%s must be positive", flagPollInterval)
		}
	}

	if s.Server == "" {
		s.Server = api.DefaultServer
	}
	return s, nil
}

// newClient creates a backend client for s
func newClient(s settings) *api.Client {
	client := api.NewClient(s.Server, s.APIBase)
	client.SetTimeout(s.Timeout)
	return client
}

// signalContext derives a context cancelled on SIGINT or SIGTERM
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
