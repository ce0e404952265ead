// Package game implements the fire drill level simulation: the state store
// that owns every mutable value of a play session, the movement and vitals
// rules it applies, and the Runner that drives it from input frames.
package game

import (
	"time"

	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/level"
)

// Phase is the session state machine position.
type Phase string

const (
	PhaseMenu          Phase = "menu"
	PhasePlaying       Phase = "playing"
	PhasePaused        Phase = "paused"
	PhaseLevelComplete Phase = "levelComplete"
	PhaseGameOver      Phase = "gameOver"
)

// Vital limits.
const (
	MaxHealth = 100.0
	MaxOxygen = 100.0
)

// Inventory holds the items a player carries.
type Inventory struct {
	Extinguishers int
	Masks         int
}

// Player is recreated on every level start or restart.
type Player struct {
	Pos       core.Vec
	Inventory Inventory
	Health    float64
	Oxygen    float64
}

func newPlayer(start core.Vec) Player {
	return Player{Pos: start, Health: MaxHealth, Oxygen: MaxOxygen}
}

// HazardState is a template hazard plus its session overlay.
type HazardState struct {
	level.Hazard
	Extinguished bool
}

// CollectibleState is a collectible plus its session overlay.
// Spawned marks items created at runtime.
type CollectibleState struct {
	level.Collectible
	Collected bool
	Spawned   bool
}

// LevelStatus is the per-level progression overlay.
type LevelStatus struct {
	ID        int
	Name      string
	Completed bool
	Unlocked  bool
}

// LevelScore is an append-only record of a completed level.
type LevelScore struct {
	LevelID           int
	Score             int
	TimeRemaining     int
	FiresExtinguished int
	ItemsCollected    int
	TipsFound         int
	CompletedAt       time.Time
}

// Bonus is the completion bonus breakdown of the last finished level.
type Bonus struct {
	Time   int
	Health int
}

// GameOverReason says why a level was lost.
type GameOverReason string

const (
	ReasonTimeUp   GameOverReason = "time"
	ReasonHealth   GameOverReason = "health"
	ReasonOxygen   GameOverReason = "oxygen"
	ReasonExternal GameOverReason = "external"
)

// GameState is the summary a front-end polls every frame.
type GameState struct {
	Phase   Phase
	LevelID int
	Score   int
}

// StepResult is returned by Runner.Step after each simulation tick.
type StepResult struct {
	State GameState
	Quit  bool // the player asked to leave the level
}
