package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"plain", c.T("HUD_OXYGEN"), "Oxygen"},
		{"formatted", c.T("HUD_LEVEL", 2, "Kitchen Safety"), "Level 2: Kitchen Safety"},
		{"singular", c.N("EXIT_BLOCKED", "EXIT_BLOCKED_PLURAL", 1, 1), "The exit is blocked: 1 fire is still burning."},
		{"plural", c.N("EXIT_BLOCKED", "EXIT_BLOCKED_PLURAL", 3, 3), "The exit is blocked: 3 fires are still burning."},
		{"unknown key", c.T("NOT_A_KEY"), "NOT_A_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, expected %q", tt.got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "de.po")
	content := "msgid \"\"\nmsgstr \"\"\n\"Language: de\\n\"\n\nmsgid \"HUD_OXYGEN\"\nmsgstr \"Sauerstoff\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := c.T("HUD_OXYGEN"); got != "Sauerstoff" {
		t.Errorf("T = %q, expected Sauerstoff", got)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.po")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	if got := c.T("HUD_LEVEL", 3, "Kitchen Safety"); got != "HUD_LEVEL" {
		t.Errorf("nil T = %q", got)
	}
	if got := c.N("one", "many", 2); got != "many" {
		t.Errorf("nil N = %q", got)
	}
}
