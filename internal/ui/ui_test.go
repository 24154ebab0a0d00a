package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestClampWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		err   error
		want  int
	}{
		{"error falls back", 120, errors.New("not a tty"), MinTerminalWidth},
		{"too narrow", 20, nil, MinTerminalWidth},
		{"in range", 80, nil, 80},
		{"too wide", 200, nil, MaxContentWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampWidth(tt.width, tt.err); got != tt.want {
				t.Errorf("clampWidth(%d) = %d, want %d", tt.width, got, tt.want)
			}
		})
	}
}

func TestResult_RenderSuccess(t *testing.T) {
	out := NewSuccessResult("Switched to PipeWire",
		Detail{Key: "Current", Value: "PipeWire"},
		Detail{Key: "Server", Value: "localhost"},
	).SetWidth(80).Render()

	for _, want := range []string{"SUCCESS", "Switched to PipeWire", "Current:", "PipeWire", "Server:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Current:") > strings.Index(out, "Server:") {
		t.Error("details should render in insertion order")
	}
}

func TestResult_RenderFailure(t *testing.T) {
	out := NewFailureResult("Switch failed", errors.New("daemon busy"), []string{"Retry in a moment"}).
		SetWidth(80).
		Render()

	for _, want := range []string{"FAILED", "Switch failed", "Error: daemon busy", "Troubleshooting:", "Retry in a moment"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestResult_RenderWarning(t *testing.T) {
	out := NewWarningResult("No backends found").AddDetail("Hosts", "2").SetWidth(60).Render()

	if !strings.Contains(out, "WARNING") || !strings.Contains(out, "Hosts:") {
		t.Errorf("Render() = %s", out)
	}
}

func TestSplitHint(t *testing.T) {
	hint := "The backend did not respond.\n\nTroubleshooting:\n  • Check the server\n  - Check the port\n"
	got := SplitHint(hint)
	want := []string{"The backend did not respond.", "Check the server", "Check the port"}

	if len(got) != len(want) {
		t.Fatalf("SplitHint() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitHint()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHeader_Render(t *testing.T) {
	out := NewHeader("Switch mode", "mpdswitch switch pipewire", Detail{Key: "Server", Value: "http://localhost:6279"}).
		SetWidth(80).
		Render()

	for _, want := range []string{"SWITCH MODE", "mpdswitch switch pipewire", "Server:", "http://localhost:6279"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderList(t *testing.T) {
	out := RenderList([]ListItem{
		{Label: "Exclusive", Note: "exclusive"},
		{Label: "PipeWire", Note: "pipewire", Active: true},
	}, "nothing")

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderList() has %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], IdleMarker+" Exclusive") || !strings.Contains(lines[0], "(exclusive)") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], ActiveMarker+" PipeWire") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestRenderList_Empty(t *testing.T) {
	out := RenderList(nil, "You have no mpd configurations to switch/activate.")
	if !strings.Contains(out, "You have no mpd configurations to switch/activate.") {
		t.Errorf("RenderList(nil) = %q", out)
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(70)

	if p.Width() != 70 {
		t.Errorf("Width() = %d, want 70", p.Width())
	}

	p.Printf("%s=%d\n", "a", 1)
	p.PrintSuccess("done")
	p.PrintError("broken", errors.New("boom"), nil)

	out := buf.String()
	if !strings.HasPrefix(out, "a=1\n") {
		t.Errorf("Printf output missing: %q", out)
	}
	if !strings.Contains(out, "done") || !strings.Contains(out, "Error: boom") {
		t.Errorf("Printer output = %s", out)
	}
}
