package game

import (
	"math"
)

// Snapshot captures the simulation state for determinism checks.
// Positions are kept in float bits so two runs compare exactly.
type Snapshot struct {
	Tick              uint64
	Phase             Phase
	LevelID           int
	Score             int
	TimeRemaining     int
	PlayerX           float64
	PlayerY           float64
	Health            float64
	Oxygen            float64
	Extinguishers     int
	Masks             int
	FiresExtinguished int
	ItemsCollected    int
	TipsCollected     []int

	// Each hazard is 1 int: Extinguished
	HazardData []int

	// Each collectible is 3 values: Collected, X bits, Y bits
	CollectibleData []uint64
}

// Snapshot returns the store state at the given tick.
func (s *Store) Snapshot(tick uint64) Snapshot {
	hazardData := make([]int, len(s.hazards))
	for i, h := range s.hazards {
		if h.Extinguished {
			hazardData[i] = 1
		}
	}

	collectibleData := make([]uint64, len(s.collectibles)*3)
	for i, c := range s.collectibles {
		idx := i * 3
		if c.Collected {
			collectibleData[idx] = 1
		}
		collectibleData[idx+1] = math.Float64bits(c.Pos.X)
		collectibleData[idx+2] = math.Float64bits(c.Pos.Y)
	}

	return Snapshot{
		Tick:              tick,
		Phase:             s.phase,
		LevelID:           s.levelID,
		Score:             s.score,
		TimeRemaining:     s.timeRemaining,
		PlayerX:           s.player.Pos.X,
		PlayerY:           s.player.Pos.Y,
		Health:            s.player.Health,
		Oxygen:            s.player.Oxygen,
		Extinguishers:     s.player.Inventory.Extinguishers,
		Masks:             s.player.Inventory.Masks,
		FiresExtinguished: s.firesExtinguished,
		ItemsCollected:    s.itemsCollected,
		TipsCollected:     s.TipsCollected(),
		HazardData:        hazardData,
		CollectibleData:   collectibleData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, c := range snap.Phase {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.LevelID)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.TimeRemaining) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + math.Float64bits(snap.Health)
	h = h*31 + math.Float64bits(snap.Oxygen)
	h = h*31 + uint64(snap.Extinguishers)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Masks)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FiresExtinguished) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ItemsCollected)    //#nosec G115 -- hash computation

	for _, id := range snap.TipsCollected {
		h = h*31 + uint64(id) //#nosec G115 -- hash computation
	}
	for _, v := range snap.HazardData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.CollectibleData {
		h = h*31 + v
	}
	return h
}
