package game

import (
	"github.com/vovakirdan/fire-drill/internal/config"
	"github.com/vovakirdan/fire-drill/internal/core"
)

// Zone is how close the player is to one hazard.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneWarning
	ZoneDanger
	ZoneCritical
)

// ZoneFor buckets a distance into a proximity zone.
func ZoneFor(d float64, r config.HazardRules) Zone {
	switch {
	case d < r.CriticalRange:
		return ZoneCritical
	case d < r.DangerRange:
		return ZoneDanger
	case d < r.WarningRange:
		return ZoneWarning
	default:
		return ZoneNone
	}
}

// VitalsDelta is the change one vitals tick applies to the player.
type VitalsDelta struct {
	Oxygen   float64
	Health   float64
	Exposure float64 // smoke accumulator before the depletion factor
	Nearest  Zone
}

// EvaluateVitals computes the oxygen and health change for one tick from
// the active hazards around pos.
//
// Critical hazards cost CriticalDamage health each and add (warning-d)*size
// to the smoke accumulator. Danger hazards cost DangerDamage and add
// (danger-d)*size; warning hazards add (warning-d)*size. Oxygen drops by
// accumulator*factor, divided again when a mask is held, and recovers only
// when no hazard is in any zone.
func EvaluateVitals(pos core.Vec, hazards []HazardState, masks int, rules config.Rules) VitalsDelta {
	hr := rules.Hazards
	var out VitalsDelta
	inAnyZone := false

	for _, h := range hazards {
		if h.Extinguished {
			continue
		}
		d := core.Dist(pos, h.Pos)
		zone := ZoneFor(d, hr)
		if zone == ZoneNone {
			continue
		}
		inAnyZone = true
		if zone > out.Nearest {
			out.Nearest = zone
		}

		switch zone {
		case ZoneCritical:
			out.Health -= hr.CriticalDamage
			out.Exposure += (hr.WarningRange - d) * h.Size
		case ZoneDanger:
			out.Health -= hr.DangerDamage
			out.Exposure += (hr.DangerRange - d) * h.Size
		case ZoneWarning:
			out.Exposure += (hr.WarningRange - d) * h.Size
		}
	}

	switch {
	case out.Exposure > 0:
		out.Oxygen = -out.Exposure * rules.Oxygen.DepletionFactor
		if masks > 0 {
			out.Oxygen /= rules.Oxygen.MaskDivisor
		}
	case !inAnyZone:
		out.Oxygen = rules.Oxygen.Recovery
	}
	return out
}

// VitalsTick applies one second of hazard exposure. Oxygen is applied before
// health; if the oxygen change ends the level the health change is dropped.
func (s *Store) VitalsTick() {
	if s.phase != PhasePlaying {
		return
	}
	d := EvaluateVitals(s.player.Pos, s.hazards, s.player.Inventory.Masks, s.rules)
	s.UpdatePlayerOxygen(d.Oxygen)
	if d.Health != 0 {
		s.UpdatePlayerHealth(d.Health)
	}
}
