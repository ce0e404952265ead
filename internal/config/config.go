// Package config provides YAML-based loading of the simulation rules and
// difficulty presets for the fire drill game.
package config

import (
	"errors"
	"fmt"
)

// Rules contains every tunable constant of the level simulation.
type Rules struct {
	Movement MovementRules `yaml:"movement"`
	Hazards  HazardRules   `yaml:"hazards"`
	Oxygen   OxygenRules   `yaml:"oxygen"`
	Scoring  ScoringRules  `yaml:"scoring"`
	Spawn    SpawnRules    `yaml:"spawn"`
	Notices  NoticeRules   `yaml:"notices"`
}

// MovementRules defines player movement and reach parameters.
type MovementRules struct {
	CollisionRadius float64 `yaml:"collision_radius"` // obstacle inflation on every side
	ExitRadius      float64 `yaml:"exit_radius"`      // strict: distance < radius
	MoveStep        float64 `yaml:"move_step"`        // grid units per key press
	InteractRadius  float64 `yaml:"interact_radius"`  // strict: distance < radius
}

// HazardRules defines proximity zones around active fires.
type HazardRules struct {
	CriticalRange   float64 `yaml:"critical_range"`
	DangerRange     float64 `yaml:"danger_range"`
	WarningRange    float64 `yaml:"warning_range"`
	CriticalDamage  float64 `yaml:"critical_damage"` // health lost per hazard per tick
	DangerDamage    float64 `yaml:"danger_damage"`
	ExtinguishRange float64 `yaml:"extinguish_range"` // inclusive
}

// OxygenRules defines how smoke exposure drains oxygen.
type OxygenRules struct {
	DepletionFactor float64 `yaml:"depletion_factor"`
	MaskDivisor     float64 `yaml:"mask_divisor"`
	Recovery        float64 `yaml:"recovery"`
	EmptyPenalty    float64 `yaml:"empty_penalty"` // health lost per tick at zero oxygen
}

// ScoringRules defines score awards.
type ScoringRules struct {
	Extinguisher   int     `yaml:"extinguisher"`
	Mask           int     `yaml:"mask"`
	Tip            int     `yaml:"tip"`
	FireBase       int     `yaml:"fire_base"`
	FireSizeFactor float64 `yaml:"fire_size_factor"`
	TimeBonus      float64 `yaml:"time_bonus"`   // per remaining second
	HealthBonus    float64 `yaml:"health_bonus"` // per remaining health point
}

// SpawnRules defines the replacement extinguisher search.
type SpawnRules struct {
	Attempts  int     `yaml:"attempts"`
	Clearance float64 `yaml:"clearance"`
	Border    float64 `yaml:"border"`
}

// NoticeRules defines how long transient notices stay on screen.
type NoticeRules struct {
	TipSeconds     float64 `yaml:"tip_seconds"`
	MessageSeconds float64 `yaml:"message_seconds"`
}

// Validate reports rule sets the simulation cannot run with.
func (r Rules) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("movement.collision_radius", r.Movement.CollisionRadius)
	positive("movement.exit_radius", r.Movement.ExitRadius)
	positive("movement.move_step", r.Movement.MoveStep)
	positive("movement.interact_radius", r.Movement.InteractRadius)
	positive("hazards.critical_range", r.Hazards.CriticalRange)
	positive("hazards.extinguish_range", r.Hazards.ExtinguishRange)
	positive("oxygen.mask_divisor", r.Oxygen.MaskDivisor)
	positive("notices.tip_seconds", r.Notices.TipSeconds)
	positive("notices.message_seconds", r.Notices.MessageSeconds)

	if r.Hazards.CriticalRange > r.Hazards.DangerRange || r.Hazards.DangerRange > r.Hazards.WarningRange {
		errs = append(errs, fmt.Errorf("hazard ranges must be ordered critical <= danger <= warning, got %v/%v/%v",
			r.Hazards.CriticalRange, r.Hazards.DangerRange, r.Hazards.WarningRange))
	}
	if r.Spawn.Attempts < 0 {
		errs = append(errs, fmt.Errorf("spawn.attempts must not be negative, got %d", r.Spawn.Attempts))
	}
	if r.Spawn.Border < 0 || r.Spawn.Clearance < 0 {
		errs = append(errs, errors.New("spawn.border and spawn.clearance must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid rules: %w", errors.Join(errs...))
	}
	return nil
}
