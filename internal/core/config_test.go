package core

import (
	"testing"
	"time"
)

func TestResolvedFillsZeroFields(t *testing.T) {
	got := RuntimeConfig{ScreenH: -1}.Resolved()
	if got.ScreenW != 80 || got.ScreenH != 24 || got.TickRate != 20 {
		t.Errorf("Resolved() = %+v", got)
	}
	if got.Seed == 0 {
		t.Error("zero seed should be replaced")
	}

	kept := RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 30, Seed: 7}
	if r := kept.Resolved(); r != kept {
		t.Errorf("Resolved() changed a complete config: %+v", r)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{20, 50 * time.Millisecond},
		{60, time.Second / 60},
		{0, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := (RuntimeConfig{TickRate: tt.rate}).TickInterval(); got != tt.want {
			t.Errorf("TickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
