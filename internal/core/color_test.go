package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, ""},
		{ColorBrightRed, "9"},
		{ColorOrange, "208"},
		{Color(200), ""},
	}
	for _, tt := range tests {
		if got := tt.c.ANSI(); got != tt.want {
			t.Errorf("Color(%d).ANSI() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestColorsCoversPalette(t *testing.T) {
	all := Colors()
	if len(all) != int(numColors) || all[0] != ColorDefault || all[len(all)-1] != ColorDarkGray {
		t.Errorf("Colors() = %v", all)
	}
	for _, c := range all[1:] {
		if c.ANSI() == "" {
			t.Errorf("color %d has no ANSI code", c)
		}
	}
}
