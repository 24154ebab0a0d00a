package session

import "testing"

func TestProject_Affordance(t *testing.T) {
	tests := []struct {
		name       string
		state      State
		want       Affordance
		wantNotice string
	}{
		{
			name:       "loading",
			state:      NewState(),
			want:       AffordanceLoading,
			wantNotice: NoticeLoading,
		},
		{
			name:       "empty",
			state:      State{Registry: Registry{Phase: RegistryReady}},
			want:       AffordanceEmpty,
			wantNotice: NoticeEmpty,
		},
		{
			name:       "failed",
			state:      State{Registry: Registry{Phase: RegistryFailed}},
			want:       AffordanceFailed,
			wantNotice: NoticeFailed,
		},
		{
			name:  "list",
			state: loadedState(pipewire),
			want:  AffordanceList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Project(tt.state)
			if v.Affordance != tt.want {
				t.Errorf("Affordance = %v, want %v", v.Affordance, tt.want)
			}
			if v.Notice != tt.wantNotice {
				t.Errorf("Notice = %q, want %q", v.Notice, tt.wantNotice)
			}
		})
	}
}

func TestProject_Buttons(t *testing.T) {
	v := Project(loadedState(pipewire))

	if v.CurrentName != "PipeWire" {
		t.Errorf("CurrentName = %q, want PipeWire", v.CurrentName)
	}
	if len(v.Buttons) != 2 {
		t.Fatalf("len(Buttons) = %d, want 2", len(v.Buttons))
	}

	// Registry order is preserved
	if v.Buttons[0].Target != exclusive || v.Buttons[1].Target != pipewire {
		t.Errorf("Buttons out of order: %+v", v.Buttons)
	}
	if v.Buttons[0].Label != "Switch to Exclusive (DSD)" {
		t.Errorf("Label = %q", v.Buttons[0].Label)
	}
	if v.Buttons[0].Active || !v.Buttons[1].Active {
		t.Errorf("Active flags = %v, %v; want false, true", v.Buttons[0].Active, v.Buttons[1].Active)
	}
	for _, b := range v.Buttons {
		if b.Disabled {
			t.Errorf("button %s disabled while idle", b.Target.Key)
		}
	}
}

func TestProject_Busy(t *testing.T) {
	s, _ := Reduce(loadedState(pipewire), SwitchRequested{Target: exclusive})
	v := Project(s)

	if !v.Busy {
		t.Error("Busy should be set")
	}
	if v.Buttons[0].Label != LabelSwitching {
		t.Errorf("pending label = %q, want %q", v.Buttons[0].Label, LabelSwitching)
	}
	if v.Buttons[1].Label != "Switch to PipeWire" {
		t.Errorf("other label = %q", v.Buttons[1].Label)
	}
	for _, b := range v.Buttons {
		if !b.Disabled {
			t.Errorf("button %s enabled during a switch", b.Target.Key)
		}
	}
	if v.Status != "Switching to Exclusive (DSD)..." {
		t.Errorf("Status = %q", v.Status)
	}
}

func TestProject_CurrentName(t *testing.T) {
	tests := []struct {
		name    string
		current ConfigTarget
		want    string
	}{
		{"loading", LoadingMode, "Loading..."},
		{"unknown", UnknownMode, "Unknown"},
		{"named", exclusive, "Exclusive (DSD)"},
		{"empty name", ConfigTarget{Key: "x"}, "[Unknown]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedState(tt.current)
			if got := Project(s).CurrentName; got != tt.want {
				t.Errorf("CurrentName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProject_AtMostOneActive(t *testing.T) {
	currents := []ConfigTarget{exclusive, pipewire, UnknownMode, LoadingMode, {Key: "gone", Name: "Gone"}}

	for _, c := range currents {
		v := Project(loadedState(c))
		if n := v.ActiveCount(); n > 1 {
			t.Errorf("current %q: ActiveCount = %d", c.Key, n)
		}
	}

	if n := Project(loadedState(UnknownMode)).ActiveCount(); n != 0 {
		t.Errorf("Unknown mode should activate nothing, got %d", n)
	}
}
