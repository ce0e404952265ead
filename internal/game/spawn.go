package game

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/level"
)

// spawnExtinguisher places one replacement extinguisher at a random free
// spot. A message notice is shown whether or not a spot was found.
func (s *Store) spawnExtinguisher() {
	sr := s.rules.Spawn
	for attempt := 1; attempt <= sr.Attempts; attempt++ {
		p := s.spawnCandidate()
		if !s.spawnFree(p) {
			continue
		}

		id, err := uuid.NewRandomFromReader(s.rng)
		if err != nil {
			s.logger.Warn("cannot mint extinguisher id", "err", err)
			break
		}
		item := CollectibleState{
			Collectible: level.Collectible{ID: "ext-" + id.String(), Pos: p, Type: level.Extinguisher},
			Spawned:     true,
		}
		s.collectibles = append(s.collectibles, item)
		s.showNotice(NoticeMessage, 0, s.msgs.T("EXTINGUISHER_SPAWNED"))
		s.publish(ExtinguisherSpawnedEvent{ItemID: item.ID, Pos: p, Attempts: attempt})
		return
	}

	s.logger.Warn("no free spot for extinguisher", "level", s.levelID, "attempts", sr.Attempts)
	s.showNotice(NoticeMessage, 0, s.msgs.T("EXTINGUISHER_SPAWN_FAILED"))
	s.publish(SpawnFailedEvent{Attempts: sr.Attempts})
}

// spawnCandidate draws a point uniformly inside the map minus the border.
func (s *Store) spawnCandidate() core.Vec {
	border := s.rules.Spawn.Border
	minX, maxX := border, s.tmpl.Width-border
	minY, maxY := border, s.tmpl.Height-border
	if maxX <= minX {
		minX, maxX = 0, s.tmpl.Width
	}
	if maxY <= minY {
		minY, maxY = 0, s.tmpl.Height
	}
	return core.V(
		minX+s.rng.Float64()*(maxX-minX),
		minY+s.rng.Float64()*(maxY-minY),
	)
}

// spawnFree reports whether p keeps the clearance from the player, every
// obstacle, every active hazard, every uncollected collectible and the exit.
func (s *Store) spawnFree(p core.Vec) bool {
	c := s.rules.Spawn.Clearance
	if core.Dist(p, s.player.Pos) < c || core.Dist(p, s.tmpl.Exit) < c {
		return false
	}
	if Blocked(p, s.tmpl.Obstacles, c) {
		return false
	}
	for _, h := range s.hazards {
		if !h.Extinguished && core.Dist(p, h.Pos) < c {
			return false
		}
	}
	for _, it := range s.collectibles {
		if !it.Collected && core.Dist(p, it.Pos) < c {
			return false
		}
	}
	return true
}
