package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultRules()
	if err := yaml.Unmarshal(defaultRulesYAML, &cfg); err != nil {
		t.Fatalf("embedded rules do not parse: %v", err)
	}
	if cfg != DefaultRules() {
		t.Errorf("embedded rules drifted from DefaultRules:\n got %+v\nwant %+v", cfg, DefaultRules())
	}
}

func TestDefaultRulesValid(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("DefaultRules invalid: %v", err)
	}
}

func TestLoadRulesCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := "movement:\n  move_step: 0.25\nscoring:\n  tip: 150\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if cfg.Movement.MoveStep != 0.25 {
		t.Errorf("MoveStep = %v, expected 0.25", cfg.Movement.MoveStep)
	}
	if cfg.Scoring.Tip != 150 {
		t.Errorf("Tip = %d, expected 150", cfg.Scoring.Tip)
	}
	// Untouched keys keep their defaults
	if cfg.Movement.CollisionRadius != 0.4 {
		t.Errorf("CollisionRadius = %v, expected default 0.4", cfg.Movement.CollisionRadius)
	}
}

func TestLoadRulesErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "movement: [", "failed to parse"},
		{"unordered ranges", "hazards:\n  danger_range: 5\n", "ordered"},
		{"zero step", "movement:\n  move_step: 0\n", "move_step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadRules(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadRules(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}
}

func TestLoadRulesLocalConfigs(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "rules.yaml"), []byte("spawn:\n  attempts: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if cfg.Spawn.Attempts != 7 {
		t.Errorf("Attempts = %d, expected 7 from ./configs", cfg.Spawn.Attempts)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	normal := DefaultRules()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultRules() {
		t.Error("normal preset should not change rules")
	}

	easy := DefaultRules()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Hazards.CriticalDamage != 1.5 || easy.Oxygen.DepletionFactor != 1 {
		t.Errorf("easy preset: critical=%v depletion=%v", easy.Hazards.CriticalDamage, easy.Oxygen.DepletionFactor)
	}
	if easy.Scoring != normal.Scoring {
		t.Error("presets must not touch scoring")
	}

	hard := DefaultRules()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Oxygen.EmptyPenalty != 7.5 {
		t.Errorf("hard preset: empty penalty = %v, expected 7.5", hard.Oxygen.EmptyPenalty)
	}
}
