package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/benedictjohannes/mpd-config-switcher/internal/api"
	"github.com/benedictjohannes/mpd-config-switcher/internal/logging"
)

const (
	// ServiceType is the mDNS service type advertised by MPD
	ServiceType = "_mpd._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default browse window
	DefaultScanTimeout = 5 * time.Second

	// DefaultProbeTimeout bounds each switcher probe
	DefaultProbeTimeout = 2 * time.Second

	// DefaultSwitcherPort is where the switcher API listens
	DefaultSwitcherPort = 6279

	// DefaultMPDPort is used when an entry carries no port
	DefaultMPDPort = 6600
)

// ProbeFunc reports whether a switcher API answers at baseURL
type ProbeFunc func(ctx context.Context, baseURL, apiBase string) error

// Scanner handles mDNS discovery of MPD hosts and switcher probing
type Scanner struct {
	// Timeout is the maximum time to browse for hosts
	Timeout time.Duration

	// ProbeTimeout bounds each switcher probe
	ProbeTimeout time.Duration

	// SwitcherPort is probed on every discovered host
	SwitcherPort int

	// APIBase is the switcher API path prefix
	APIBase string

	// Probe checks a candidate; defaults to ProbeConfigParts
	Probe ProbeFunc
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout:      DefaultScanTimeout,
		ProbeTimeout: DefaultProbeTimeout,
		SwitcherPort: DefaultSwitcherPort,
		APIBase:      api.DefaultAPIBase,
		Probe:        ProbeConfigParts,
	}
}

// ProbeConfigParts issues GET {baseURL}{apiBase}/configparts and succeeds
// on any well-formed 2xx answer
func ProbeConfigParts(ctx context.Context, baseURL, apiBase string) error {
	client := api.NewClient(baseURL, apiBase)
	_, err := client.ConfigParts(ctx)
	return err
}

// ScanForHosts browses for MPD hosts until the timeout or ctx expires.
// Hosts are deduplicated by instance name and sorted by it.
func (s *Scanner) ScanForHosts(ctx context.Context) ([]*Host, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	collector := newHostSet()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case entry := <-entries:
				if entry == nil {
					continue
				}
				if host := s.parseServiceEntry(entry); host != nil {
					collector.add(host)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done

	hosts := collector.list()
	logging.Debug("mDNS browse finished", zap.Int("hosts", len(hosts)))
	return hosts, nil
}

// FindBackends scans for MPD hosts and probes each one's switcher port
// concurrently. Every host is returned; Backend marks those that answered.
func (s *Scanner) FindBackends(ctx context.Context) ([]*Host, error) {
	hosts, err := s.ScanForHosts(ctx)
	if err != nil {
		return nil, err
	}
	s.ProbeHosts(ctx, hosts)
	return hosts, nil
}

// ProbeHosts sets Backend on each host whose switcher API answers
func (s *Scanner) ProbeHosts(ctx context.Context, hosts []*Host) {
	probe := s.Probe
	if probe == nil {
		probe = ProbeConfigParts
	}

	var wg sync.WaitGroup
	for _, h := range hosts {
		wg.Add(1)
		go func(h *Host) {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, s.ProbeTimeout)
			defer cancel()

			if err := probe(pctx, h.BaseURL(), s.APIBase); err != nil {
				logging.Debug("Probe failed", zap.String("host", h.BaseURL()), zap.Error(err))
				return
			}
			h.Backend = true
		}(h)
	}
	wg.Wait()
}

// parseServiceEntry converts a zeroconf service entry to a Host.
// Returns nil if the entry has no usable address.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Host {
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	instance := entry.Instance
	if instance == "" {
		instance = strings.TrimSuffix(entry.HostName, ".")
	}
	if instance == "" {
		instance = ip
	}

	port := entry.Port
	if port == 0 {
		port = DefaultMPDPort
	}

	switcherPort := s.SwitcherPort
	if switcherPort == 0 {
		switcherPort = DefaultSwitcherPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Host{
		Instance:     instance,
		Hostname:     entry.HostName,
		IP:           ip,
		MPDPort:      port,
		SwitcherPort: switcherPort,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// hostSet collects hosts keyed by instance, first sighting wins
type hostSet struct {
	mu    sync.Mutex
	hosts map[string]*Host
}

func newHostSet() *hostSet {
	return &hostSet{hosts: make(map[string]*Host)}
}

func (hs *hostSet) add(h *Host) bool {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if _, exists := hs.hosts[h.Instance]; exists {
		return false
	}
	hs.hosts[h.Instance] = h
	logging.Debug("Discovered MPD host", zap.String("instance", h.Instance), zap.String("ip", h.IP))
	return true
}

func (hs *hostSet) list() []*Host {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	out := make([]*Host, 0, len(hs.hosts))
	for _, h := range hs.hosts {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Instance < out[j].Instance })
	return out
}

// Backends filters hosts down to confirmed switcher backends
func Backends(hosts []*Host) []*Host {
	var out []*Host
	for _, h := range hosts {
		if h.Backend {
			out = append(out, h)
		}
	}
	return out
}
