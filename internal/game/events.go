package game

import (
	"time"

	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/level"
)

// Event is a domain event published by the Store to its subscribers.
// Subscribers read; they never mutate the store from inside a handler.
type Event interface {
	gameEvent()
}

// GameStartedEvent is published when a level starts or restarts.
type GameStartedEvent struct {
	LevelID   int
	Restarted bool
}

func (GameStartedEvent) gameEvent() {}

// PhaseChangedEvent is published on every phase transition.
type PhaseChangedEvent struct {
	From Phase
	To   Phase
}

func (PhaseChangedEvent) gameEvent() {}

// ItemCollectedEvent is published when a collectible is picked up.
type ItemCollectedEvent struct {
	ItemID     string
	Type       level.CollectibleType
	ScoreDelta int
}

func (ItemCollectedEvent) gameEvent() {}

// TipFoundEvent is published the first time a tip id is collected in a session.
type TipFoundEvent struct {
	TipID int
}

func (TipFoundEvent) gameEvent() {}

// HazardExtinguishedEvent is published when a fire is put out.
type HazardExtinguishedEvent struct {
	HazardID   string
	ScoreDelta int
	Remaining  int // active hazards left
}

func (HazardExtinguishedEvent) gameEvent() {}

// ExtinguisherSpawnedEvent is published when a replacement extinguisher appears.
type ExtinguisherSpawnedEvent struct {
	ItemID   string
	Pos      core.Vec
	Attempts int
}

func (ExtinguisherSpawnedEvent) gameEvent() {}

// SpawnFailedEvent is published when no free spot was found for a replacement.
type SpawnFailedEvent struct {
	Attempts int
}

func (SpawnFailedEvent) gameEvent() {}

// ExitBlockedEvent is published when the player reaches the exit while fires burn.
type ExitBlockedEvent struct {
	FiresRemaining int
}

func (ExitBlockedEvent) gameEvent() {}

// LevelCompletedEvent is published after the completion bonus is applied.
type LevelCompletedEvent struct {
	Record LevelScore
	Bonus  Bonus
}

func (LevelCompletedEvent) gameEvent() {}

// LevelUnlockedEvent is published when a locked level becomes playable.
type LevelUnlockedEvent struct {
	LevelID int
}

func (LevelUnlockedEvent) gameEvent() {}

// GameOverEvent is published when a level is lost.
type GameOverEvent struct {
	LevelID int
	Reason  GameOverReason
	Score   int
}

func (GameOverEvent) gameEvent() {}

// NoticeShownEvent is published when a notice becomes visible.
// Clear it with ExpireNotice(Kind, Generation) once TTL has elapsed.
type NoticeShownEvent struct {
	Kind       NoticeKind
	Generation uint64
	TTL        time.Duration
}

func (NoticeShownEvent) gameEvent() {}

// NoticeClearedEvent is published when a notice is hidden.
type NoticeClearedEvent struct {
	Kind       NoticeKind
	Generation uint64
}

func (NoticeClearedEvent) gameEvent() {}

type subscriber struct {
	id int
	fn func(Event)
}
