package discovery

import "testing"

func TestHost_String(t *testing.T) {
	host := &Host{
		Instance:     "Music Player Daemon on den",
		Hostname:     "den.local.",
		IP:           "192.168.4.16",
		SwitcherPort: 6279,
	}

	expected := "Music Player Daemon on den (den.local.) at http://192.168.4.16:6279"
	if host.String() != expected {
		t.Errorf("Host.String() = %v, want %v", host.String(), expected)
	}
}

func TestHost_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		host     *Host
		expected string
	}{
		{
			name:     "default switcher port",
			host:     &Host{IP: "192.168.4.16", SwitcherPort: 6279},
			expected: "http://192.168.4.16:6279",
		},
		{
			name:     "custom port",
			host:     &Host{IP: "10.0.0.5", SwitcherPort: 8080},
			expected: "http://10.0.0.5:8080",
		},
		{
			name:     "IPv6 is bracketed",
			host:     &Host{IP: "fe80::1", SwitcherPort: 6279},
			expected: "http://[fe80::1]:6279",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.host.BaseURL(); got != tt.expected {
				t.Errorf("Host.BaseURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHost_GetMetadata(t *testing.T) {
	host := &Host{Metadata: map[string]string{"txtvers": "1"}}

	if got := host.GetMetadata("txtvers"); got != "1" {
		t.Errorf("GetMetadata(txtvers) = %q, want 1", got)
	}
	if got := host.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %q, want empty", got)
	}

	empty := &Host{}
	if got := empty.GetMetadata("anything"); got != "" {
		t.Errorf("GetMetadata() with nil map = %q, want empty string", got)
	}
}
