package game

import (
	"math"

	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/level"
)

// Runner drives a Store from input frames at a fixed tick rate.
// It owns the one second gameplay clock and the notice expiry timers;
// everything else is delegated to the store.
type Runner struct {
	store  *Store
	cfg    core.RuntimeConfig
	tick   uint64
	second int // ticks since the last gameplay second
	timers Timers
	unsub  func()
}

// NewRunner wraps store. Call Reset before the first Step.
func NewRunner(store *Store) *Runner {
	r := &Runner{store: store, cfg: core.DefaultConfig()}
	r.unsub = store.Subscribe(r.onEvent)
	return r
}

// Store returns the driven store.
func (r *Runner) Store() *Store {
	return r.store
}

// Close detaches the runner from its store.
func (r *Runner) Close() {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
}

// Reset clears the clock and every pending timer. Store progression is kept.
func (r *Runner) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	r.cfg = cfg
	r.tick = 0
	r.second = 0
	r.timers.Reset()
}

// Start begins levelID. It reports whether the level is now being played.
func (r *Runner) Start(levelID int) bool {
	r.store.StartGame(levelID)
	return r.store.Phase() == PhasePlaying && r.store.CurrentLevelID() == levelID
}

// Tick returns the number of steps taken since Reset.
func (r *Runner) Tick() uint64 {
	return r.tick
}

// PendingTimers returns the number of scheduled notice expiries.
func (r *Runner) PendingTimers() int {
	return r.timers.Pending()
}

func (r *Runner) onEvent(ev Event) {
	switch e := ev.(type) {
	case NoticeShownEvent:
		kind, gen := e.Kind, e.Generation
		r.timers.After(r.ticksFor(e.TTL.Seconds()), func() {
			r.store.ExpireNotice(kind, gen)
		})
	case GameStartedEvent:
		r.second = 0
	}
}

func (r *Runner) ticksFor(secs float64) uint64 {
	return uint64(math.Ceil(secs * float64(r.cfg.TickRate))) //#nosec G115 -- durations are positive
}

// Step advances the simulation by one tick.
func (r *Runner) Step(in core.InputFrame) StepResult {
	r.tick++
	r.timers.Advance()

	if in.Has(core.ActionQuit) {
		r.store.ExitLevel()
		return StepResult{State: r.store.State(), Quit: true}
	}

	switch r.store.Phase() {
	case PhasePlaying:
		return r.stepPlaying(in)
	case PhasePaused:
		switch {
		case in.Has(core.ActionPause):
			r.store.ResumeGame()
		case in.Has(core.ActionRestart):
			r.store.RestartLevel()
		case in.Has(core.ActionBack):
			return r.leave()
		}
	case PhaseLevelComplete:
		switch {
		case in.Has(core.ActionConfirm):
			if next, ok := r.store.NextUnlockedLevel(); ok {
				r.store.StartGame(next)
			} else {
				return r.leave()
			}
		case in.Has(core.ActionRestart):
			r.store.RestartLevel()
		case in.Has(core.ActionBack):
			return r.leave()
		}
	case PhaseGameOver:
		switch {
		case in.Has(core.ActionRestart):
			r.store.RestartLevel()
		case in.Has(core.ActionBack):
			return r.leave()
		}
	case PhaseMenu:
		if in.Has(core.ActionBack) {
			return StepResult{State: r.store.State(), Quit: true}
		}
	}
	return StepResult{State: r.store.State()}
}

func (r *Runner) leave() StepResult {
	r.store.ExitLevel()
	return StepResult{State: r.store.State(), Quit: true}
}

func (r *Runner) stepPlaying(in core.InputFrame) StepResult {
	s := r.store
	if in.Has(core.ActionPause) {
		s.PauseGame()
		return StepResult{State: s.State()}
	}
	if in.Has(core.ActionBack) {
		return r.leave()
	}
	if in.Has(core.ActionDismiss) {
		if s.Notice(NoticeTip).Visible {
			s.HideTip()
		} else {
			s.DismissNotification()
		}
	}

	step := s.rules.Movement.MoveStep
	moves := []struct {
		action core.Action
		dx, dy float64
	}{
		{core.ActionUp, 0, -step},
		{core.ActionDown, 0, step},
		{core.ActionLeft, -step, 0},
		{core.ActionRight, step, 0},
	}
	for _, m := range moves {
		for range in.Count(m.action) {
			if s.Phase() != PhasePlaying {
				break
			}
			s.MovePlayer(m.dx, m.dy)
		}
	}

	if in.Has(core.ActionInteract) {
		r.interact()
	}
	if in.Has(core.ActionExtinguish) {
		r.extinguish()
	}

	if s.Phase() == PhasePlaying {
		r.second++
		if r.second >= r.cfg.TickRate {
			r.second = 0
			s.DecreaseTime()
			s.VitalsTick()
		}
	}
	return StepResult{State: s.State()}
}

// interact collects the first uncollected item within reach, in list order.
// Exit markers are reached by walking, not picked up.
func (r *Runner) interact() {
	s := r.store
	if s.Phase() != PhasePlaying {
		return
	}
	radius := s.rules.Movement.InteractRadius
	for _, c := range s.collectibles {
		if c.Collected || c.Type == level.ExitItem {
			continue
		}
		if core.Dist(s.player.Pos, c.Pos) < radius {
			s.CollectItem(c.ID)
			return
		}
	}
	s.Notify(s.msgs.T("NOTHING_TO_PICK_UP"))
}

// extinguish sprays the nearest burning hazard within range.
func (r *Runner) extinguish() {
	s := r.store
	if s.Phase() != PhasePlaying {
		return
	}
	if s.player.Inventory.Extinguishers < 1 {
		s.Notify(s.msgs.T("NO_EXTINGUISHER"))
		return
	}
	target, best := "", math.Inf(1)
	for _, h := range s.hazards {
		if h.Extinguished {
			continue
		}
		if d := core.Dist(s.player.Pos, h.Pos); d <= s.rules.Hazards.ExtinguishRange && d < best {
			target, best = h.ID, d
		}
	}
	if target == "" {
		s.Notify(s.msgs.T("NO_FIRE_IN_RANGE"))
		return
	}
	s.ExtinguishFire(target)
}

// State returns the polled summary.
func (r *Runner) State() GameState {
	return r.store.State()
}

// Snapshot returns the current state for determinism verification.
func (r *Runner) Snapshot() Snapshot {
	return r.store.Snapshot(r.tick)
}
