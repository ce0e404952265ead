package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// hazardScaleForPreset returns the multiplier applied to every source of
// health and oxygen loss.
func hazardScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}

// ApplyPreset scales the damage rules for a difficulty preset.
// Normal leaves the rules untouched.
func ApplyPreset(r *Rules, preset DifficultyPreset) {
	scale := hazardScaleForPreset(preset)
	if scale == 1.0 {
		return
	}
	r.Hazards.CriticalDamage *= scale
	r.Hazards.DangerDamage *= scale
	r.Oxygen.DepletionFactor *= scale
	r.Oxygen.EmptyPenalty *= scale
}
