// Package discovery locates switcher backends on the local network.
//
// MPD servers advertise themselves over multicast DNS as "_mpd._tcp". The
// switcher runs next to MPD, so every advertised host is a candidate: its
// switcher port (6279 by default) is probed with GET /api/configparts and
// a well-formed answer marks it as a backend.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	scanner.Timeout = 3 * time.Second
//	hosts, err := scanner.FindBackends(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, h := range discovery.Backends(hosts) {
//	    fmt.Println(h.BaseURL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Hosts must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
