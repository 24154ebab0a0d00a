package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/benedictjohannes/mpd-config-switcher/internal/api"
)

// switcherServer is an httptest backend speaking the switcher's wire format
type switcherServer struct {
	mu        sync.Mutex
	current   ConfigTarget
	busy      bool // switch answers 500 {"error":"daemon busy"}
	modeCalls int
}

func newSwitcherServer(t *testing.T, current ConfigTarget) (*switcherServer, *api.Client) {
	t.Helper()
	s := &switcherServer{current: current}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/configparts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]ConfigTarget{pipewire, exclusive})
	})
	mux.HandleFunc("/api/currentmode", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.modeCalls++
		_ = json.NewEncoder(w).Encode(s.current)
	})
	mux.HandleFunc("/api/switch/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.busy {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "daemon busy"})
			return
		}
		key := strings.TrimPrefix(r.URL.Path, "/api/switch/")
		for _, t := range []ConfigTarget{pipewire, exclusive} {
			if t.Key == key {
				s.current = t
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": ""})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return s, api.NewClient(srv.URL, "/api")
}

func (s *switcherServer) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modeCalls
}

func startHTTPEngine(t *testing.T, client *api.Client) *Engine {
	t.Helper()
	e := NewEngine(client, WithPollInterval(time.Hour))
	e.Start(context.Background())
	t.Cleanup(e.Close)
	return e
}

func TestEngineHTTP_InitialProjection(t *testing.T) {
	_, client := newSwitcherServer(t, pipewire)
	e := startHTTPEngine(t, client)

	v := Project(waitForState(t, e, idle(pipewire)))

	require.Equal(t, AffordanceList, v.Affordance)
	require.Len(t, v.Buttons, 2)
	require.True(t, v.Buttons[0].Active, "PipeWire is current")
	require.False(t, v.Buttons[1].Active, "Exclusive is not current")
	for _, b := range v.Buttons {
		require.False(t, b.Disabled)
	}
}

func TestEngineHTTP_DaemonBusy(t *testing.T) {
	srv, client := newSwitcherServer(t, pipewire)
	srv.mu.Lock()
	srv.busy = true
	srv.mu.Unlock()
	e := startHTTPEngine(t, client)
	waitForState(t, e, idle(pipewire))

	e.SwitchTo(exclusive)
	s := waitForState(t, e, func(s State) bool { return s.Failure && !s.Busy })

	require.Equal(t, "Error switching mode: daemon busy (HTTP 500)", s.Status)
	require.Equal(t, pipewire, s.Current)
	require.Equal(t, 1, srv.calls(), "a failed switch issues no confirmation poll")
}

func TestEngineHTTP_SwitchConfirmed(t *testing.T) {
	srv, client := newSwitcherServer(t, pipewire)
	e := startHTTPEngine(t, client)
	waitForState(t, e, idle(pipewire))

	e.SwitchTo(exclusive)
	s := waitForState(t, e, idle(exclusive))

	require.Equal(t, "Switched to Exclusive (DSD)", s.Status)
	require.False(t, s.Failure)
	require.Equal(t, 2, srv.calls(), "exactly one confirmation poll after the initial one")
}
