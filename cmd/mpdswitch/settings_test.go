package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/benedictjohannes/mpd-config-switcher/internal/config"
)

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addPersistentFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error = %v", args, err)
	}
	return cmd
}

func TestResolveSettings(t *testing.T) {
	file := config.New()
	file.Server = "http://from-file:6279"
	file.PollInterval = 2 * time.Second

	tests := []struct {
		name string
		args []string
		want settings
	}{
		{
			name: "file wins over defaults",
			want: settings{
				Server:          "http://from-file:6279",
				APIBase:         config.DefaultAPIBase,
				Timeout:         config.DefaultTimeout,
				PollInterval:    2 * time.Second,
				DiscoverTimeout: config.DefaultDiscoverTimeout,
			},
		},
		{
			name: "flags win over file",
			args: []string{"--server", "http://from-flag:6279", "--poll-interval", "750ms", "--timeout", "3s"},
			want: settings{
				Server:          "http://from-flag:6279",
				APIBase:         config.DefaultAPIBase,
				Timeout:         3 * time.Second,
				PollInterval:    750 * time.Millisecond,
				DiscoverTimeout: config.DefaultDiscoverTimeout,
			},
		},
		{
			name: "empty api base mounts at the root",
			args: []string{"--api-base", ""},
			want: settings{
				Server:          "http://from-file:6279",
				APIBase:         "",
				Timeout:         config.DefaultTimeout,
				PollInterval:    2 * time.Second,
				DiscoverTimeout: config.DefaultDiscoverTimeout,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSettings(newFlagCommand(t, tt.args...), file)
			if err != nil {
				t.Fatalf("resolveSettings() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveSettings_Invalid(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--poll-interval", "0s"}, "--poll-interval must be positive"},
		{[]string{"--timeout", "-1s"}, "--timeout must be positive"},
	}

	for _, tt := range tests {
		_, err := resolveSettings(newFlagCommand(t, tt.args...), config.New())
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("resolveSettings(%v) error = %v, want %q", tt.args, err, tt.want)
		}
	}
}

func TestNewClient(t *testing.T) {
	client := newClient(settings{Server: "mpd-box:6279", APIBase: "/api", Timeout: 4 * time.Second})

	if client.BaseURL != "http://mpd-box:6279/api" {
		t.Errorf("BaseURL = %q, want http://mpd-box:6279/api", client.BaseURL)
	}
	if client.HTTPClient.Timeout != 4*time.Second {
		t.Errorf("Timeout = %v, want 4s", client.HTTPClient.Timeout)
	}
}
