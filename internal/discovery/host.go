package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Host is an MPD server found on the network. It becomes a switcher
// backend once a probe of its switcher port succeeds.
type Host struct {
	// Instance is the advertised service instance name (e.g., "Music Player Daemon on den")
	Instance string

	// Hostname is the mDNS hostname (e.g., "den.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	// MPDPort is the advertised MPD protocol port (typically 6600)
	MPDPort int

	// SwitcherPort is the port probed for the switcher HTTP API
	SwitcherPort int

	// Metadata contains the mDNS TXT record data
	Metadata map[string]string

	// Backend is true once the switcher API answered on SwitcherPort
	Backend bool

	// DiscoveredAt is when the host was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable representation of the host
func (h *Host) String() string {
	return fmt.Sprintf("%s (%s) at %s", h.Instance, h.Hostname, h.BaseURL())
}

// BaseURL returns the switcher origin, e.g. http://192.168.1.20:6279
func (h *Host) BaseURL() string {
	return "http://" + net.JoinHostPort(h.IP, strconv.Itoa(h.SwitcherPort))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (h *Host) GetMetadata(key string) string {
	if h.Metadata == nil {
		return ""
	}
	return h.Metadata[key]
}
