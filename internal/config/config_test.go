package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "mpdswitch") {
		t.Errorf("GetConfigDir() = %v, should contain 'mpdswitch'", configDir)
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != "/tmp/xdg-test/mpdswitch" {
		t.Errorf("GetConfigDir() = %v, want /tmp/xdg-test/mpdswitch", configDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Version != 1 {
		t.Errorf("New().Version = %v, want 1", cfg.Version)
	}
	if cfg.Server != DefaultServer {
		t.Errorf("New().Server = %v, want %v", cfg.Server, DefaultServer)
	}
	if cfg.APIBase != "/api" {
		t.Errorf("New().APIBase = %v, want /api", cfg.APIBase)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("New().PollInterval = %v, want 5s", cfg.PollInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("New().Validate() error = %v", err)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *cfg != *New() {
		t.Errorf("LoadFrom() = %+v, want defaults", cfg)
	}
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr string
	}{
		{
			name: "full",
			content: `version: 1
server: http://mpd-box:6279
api_base: /switcher/api
poll_interval: 2s
timeout: 3s
discover_timeout: 1s
`,
			want: Config{
				Version:         1,
				Server:          "http://mpd-box:6279",
				APIBase:         "/switcher/api",
				PollInterval:    2 * time.Second,
				Timeout:         3 * time.Second,
				DiscoverTimeout: time.Second,
			},
		},
		{
			name:    "partial keeps defaults",
			content: "version: 1\nserver: http://10.0.0.5:6279\n",
			want: Config{
				Version:         1,
				Server:          "http://10.0.0.5:6279",
				APIBase:         DefaultAPIBase,
				PollInterval:    DefaultPollInterval,
				Timeout:         DefaultTimeout,
				DiscoverTimeout: DefaultDiscoverTimeout,
			},
		},
		{
			name:    "unsupported version",
			content: "version: 2\n",
			wantErr: "unsupported config version: 2",
		},
		{
			name:    "missing version",
			content: "server: http://x\n",
			wantErr: "unsupported config version: 0",
		},
		{
			name:    "negative interval",
			content: "version: 1\npoll_interval: -1s\n",
			wantErr: "poll_interval must be positive",
		},
		{
			name:    "malformed yaml",
			content: "version: [1\n",
			wantErr: "failed to parse config file",
		},
		{
			name:    "bad duration",
			content: "version: 1\ntimeout: soon\n",
			wantErr: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadFrom() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFrom() error = %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("LoadFrom() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := New()
	cfg.Server = "http://192.168.1.20:6279"
	cfg.PollInterval = 750 * time.Millisecond

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("config perms = %v, want 0600", info.Mode().Perm())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# mpdswitch configuration file") {
		t.Error("saved config should start with the header comment")
	}
	if !strings.Contains(string(data), "poll_interval: 750ms") {
		t.Errorf("durations should be saved as strings:\n%s", data)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", *loaded, *cfg)
	}
}

func TestSaveTo_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := New()
	cfg.Version = 7

	if err := cfg.SaveTo(path); err == nil {
		t.Fatal("SaveTo() should reject an invalid config")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("nothing should be written for an invalid config")
	}
}

func TestLoad_UsesConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := New()
	cfg.Server = "http://saved:6279"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server != "http://saved:6279" {
		t.Errorf("Load().Server = %v, want http://saved:6279", loaded.Server)
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
