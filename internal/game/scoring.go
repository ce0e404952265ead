package game

import (
	"math"

	"github.com/vovakirdan/fire-drill/internal/config"
)

// FireScore is the score for putting out a hazard of the given size.
func FireScore(size float64, r config.ScoringRules) int {
	return r.FireBase + int(math.Floor(size*r.FireSizeFactor))
}

// CompletionBonus computes the time and health bonus added on level completion.
func CompletionBonus(timeRemaining int, health float64, r config.ScoringRules) Bonus {
	return Bonus{
		Time:   int(math.Floor(float64(timeRemaining) * r.TimeBonus)),
		Health: int(math.Floor(health * r.HealthBonus)),
	}
}
