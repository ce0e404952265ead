package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRules returns the built-in rule set.
func DefaultRules() Rules {
	return Rules{
		Movement: MovementRules{
			CollisionRadius: 0.4,
			ExitRadius:      1.5,
			MoveStep:        0.5,
			InteractRadius:  1.5,
		},
		Hazards: HazardRules{
			CriticalRange:   1.0,
			DangerRange:     2.0,
			WarningRange:    3.0,
			CriticalDamage:  3,
			DangerDamage:    1,
			ExtinguishRange: 3.0,
		},
		Oxygen: OxygenRules{
			DepletionFactor: 2,
			MaskDivisor:     2,
			Recovery:        1,
			EmptyPenalty:    5,
		},
		Scoring: ScoringRules{
			Extinguisher:   50,
			Mask:           30,
			Tip:            100,
			FireBase:       100,
			FireSizeFactor: 50,
			TimeBonus:      5,
			HealthBonus:    2,
		},
		Spawn: SpawnRules{
			Attempts:  50,
			Clearance: 1.0,
			Border:    1.0,
		},
		Notices: NoticeRules{
			TipSeconds:     8,
			MessageSeconds: 4,
		},
	}
}
