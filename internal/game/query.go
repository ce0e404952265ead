package game

import (
	"slices"

	"github.com/vovakirdan/fire-drill/internal/config"
	"github.com/vovakirdan/fire-drill/internal/i18n"
	"github.com/vovakirdan/fire-drill/internal/level"
)

// Phase returns the current phase.
func (s *Store) Phase() Phase { return s.phase }

// CurrentLevelID returns the id of the level last started, or 0.
func (s *Store) CurrentLevelID() int { return s.levelID }

// Level returns a copy of the current level template.
func (s *Store) Level() level.Level { return s.tmpl.Clone() }

// Hazards returns a copy of the live hazard overlay.
func (s *Store) Hazards() []HazardState { return slices.Clone(s.hazards) }

// Collectibles returns a copy of the live collectible overlay, spawned items included.
func (s *Store) Collectibles() []CollectibleState { return slices.Clone(s.collectibles) }

// ActiveHazards counts hazards still burning.
func (s *Store) ActiveHazards() int {
	n := 0
	for _, h := range s.hazards {
		if !h.Extinguished {
			n++
		}
	}
	return n
}

// LevelStatus returns the progression flags of level id.
func (s *Store) LevelStatus(id int) (LevelStatus, bool) {
	st, ok := s.progress[id]
	if !ok {
		return LevelStatus{}, false
	}
	return *st, true
}

// Levels returns the progression flags of every level in id order.
func (s *Store) Levels() []LevelStatus {
	out := make([]LevelStatus, 0, len(s.progress))
	for _, id := range s.catalog.IDs() {
		if st, ok := s.progress[id]; ok {
			out = append(out, *st)
		}
	}
	return out
}

// NextUnlockedLevel returns the first unlocked level after the current one.
func (s *Store) NextUnlockedLevel() (int, bool) {
	for _, st := range s.Levels() {
		if st.ID > s.levelID && st.Unlocked {
			return st.ID, true
		}
	}
	return 0, false
}

// Player returns a copy of the player.
func (s *Store) Player() Player { return s.player }

// Score returns the score of the current run.
func (s *Store) Score() int { return s.score }

// TimeRemaining returns the seconds left on the level clock.
func (s *Store) TimeRemaining() int { return s.timeRemaining }

// FiresExtinguished counts fires put out in the current run.
func (s *Store) FiresExtinguished() int { return s.firesExtinguished }

// ItemsCollected counts pickups in the current run.
func (s *Store) ItemsCollected() int { return s.itemsCollected }

// LastBonus returns the completion bonus of the last finished level.
func (s *Store) LastBonus() Bonus { return s.lastBonus }

// Tips returns the safety tip catalog.
func (s *Store) Tips() *level.Tips { return s.tips }

// TipsCollected returns the collected tip ids in ascending order.
func (s *Store) TipsCollected() []int {
	ids := make([]int, 0, s.tipsCollected.Size())
	s.tipsCollected.Each(func(id int) { ids = append(ids, id) })
	slices.Sort(ids)
	return ids
}

// State returns the polled summary.
func (s *Store) State() GameState {
	return GameState{Phase: s.phase, LevelID: s.levelID, Score: s.score}
}

// Messages returns the catalogue used for player-facing texts.
func (s *Store) Messages() *i18n.Catalog { return s.msgs }

// Rules returns the rule set in effect.
func (s *Store) Rules() config.Rules { return s.rules }
