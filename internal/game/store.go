package game

import (
	"io"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/fire-drill/internal/config"
	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/i18n"
	"github.com/vovakirdan/fire-drill/internal/level"
)

// ScoreSink receives every completed-level record, e.g. a leaderboard mirror.
type ScoreSink interface {
	SaveLevelScore(rec LevelScore) error
}

// Store owns all mutable state of one play session. Commands never fail:
// a call whose preconditions do not hold returns without changing anything.
// A Store is not safe for concurrent use; each session gets its own.
type Store struct {
	catalog *level.Catalog
	tips    *level.Tips
	rules   config.Rules
	msgs    *i18n.Catalog
	rng     *rand.Rand
	now     func() time.Time
	logger  *log.Logger
	sink    ScoreSink

	phase        Phase
	levelID      int
	tmpl         level.Level
	hazards      []HazardState
	collectibles []CollectibleState
	player       Player

	score             int
	timeRemaining     int
	tipsCollected     mapset.Set[int]
	firesExtinguished int
	itemsCollected    int
	lastBonus         Bonus

	progress map[int]*LevelStatus
	history  []LevelScore
	notices  [noticeKinds]Notice

	subs    []subscriber
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithRules replaces the default rule set.
func WithRules(r config.Rules) Option {
	return func(s *Store) { s.rules = r }
}

// WithTips sets the safety tip catalog used for tip popups.
func WithTips(t *level.Tips) Option {
	return func(s *Store) { s.tips = t }
}

// WithMessages sets the catalogue used for notice texts.
func WithMessages(c *i18n.Catalog) Option {
	return func(s *Store) { s.msgs = c }
}

// WithSeed seeds the spawn RNG.
func WithSeed(seed int64) Option {
	return func(s *Store) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithClock overrides the clock used for LevelScore timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithScoreSink mirrors every LevelScore to sink.
func WithScoreSink(sink ScoreSink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store in the menu phase with the catalog's authored
// lock state.
func NewStore(catalog *level.Catalog, opts ...Option) *Store {
	s := &Store{
		catalog:       catalog,
		rules:         config.DefaultRules(),
		msgs:          i18n.Default(),
		rng:           rand.New(rand.NewSource(1)),
		now:           time.Now,
		logger:        log.New(io.Discard),
		phase:         PhaseMenu,
		tipsCollected: mapset.New[int](),
		progress:      make(map[int]*LevelStatus, catalog.Len()),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, l := range catalog.Levels() {
		s.progress[l.ID] = &LevelStatus{ID: l.ID, Name: l.Name, Unlocked: l.Unlocked}
	}
	return s
}

// Subscribe registers fn for every event. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *Store) publish(ev Event) {
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(ev)
	}
}

func (s *Store) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	from := s.phase
	s.phase = p
	s.logger.Debug("phase changed", "from", from, "to", p, "level", s.levelID)
	s.publish(PhaseChangedEvent{From: from, To: p})
}

// StartGame begins levelID. No-op if the level is missing or locked.
func (s *Store) StartGame(levelID int) {
	st, ok := s.progress[levelID]
	if !ok || !st.Unlocked {
		return
	}
	tmpl, ok := s.catalog.Get(levelID)
	if !ok {
		return
	}
	s.levelID = levelID
	s.tmpl = tmpl
	s.resetSession()
	s.publish(GameStartedEvent{LevelID: levelID})
	s.setPhase(PhasePlaying)
}

// RestartLevel resets player, timer, score and counters of the current
// level and resumes play. Progression and history are kept.
func (s *Store) RestartLevel() {
	if s.levelID == 0 {
		return
	}
	s.resetSession()
	s.publish(GameStartedEvent{LevelID: s.levelID, Restarted: true})
	s.setPhase(PhasePlaying)
}

// resetSession rebuilds the per-level overlay from the template.
func (s *Store) resetSession() {
	s.player = newPlayer(s.tmpl.Start)
	s.score = 0
	s.timeRemaining = s.tmpl.TimeLimit
	s.tipsCollected = mapset.New[int]()
	s.firesExtinguished = 0
	s.itemsCollected = 0
	s.lastBonus = Bonus{}

	s.hazards = make([]HazardState, len(s.tmpl.Hazards))
	for i, h := range s.tmpl.Hazards {
		s.hazards[i] = HazardState{Hazard: h}
	}
	s.collectibles = make([]CollectibleState, len(s.tmpl.Collectibles))
	for i, c := range s.tmpl.Collectibles {
		s.collectibles[i] = CollectibleState{Collectible: c}
	}

	s.clearNotice(NoticeTip)
	s.clearNotice(NoticeMessage)
}

// PauseGame pauses a level in play.
func (s *Store) PauseGame() {
	if s.phase != PhasePlaying {
		return
	}
	s.setPhase(PhasePaused)
}

// ResumeGame resumes a paused level.
func (s *Store) ResumeGame() {
	if s.phase != PhasePaused {
		return
	}
	s.setPhase(PhasePlaying)
}

// GameOver ends the current level. Score and player are left as they are.
func (s *Store) GameOver() {
	s.gameOver(ReasonExternal)
}

func (s *Store) gameOver(reason GameOverReason) {
	if s.phase == PhaseGameOver {
		return
	}
	s.setPhase(PhaseGameOver)
	s.publish(GameOverEvent{LevelID: s.levelID, Reason: reason, Score: s.score})
}

// ExitLevel returns to the menu from any phase.
func (s *Store) ExitLevel() {
	s.clearNotice(NoticeTip)
	s.clearNotice(NoticeMessage)
	s.setPhase(PhaseMenu)
}

// MovePlayer moves the player by (dx, dy) and then evaluates exit arrival,
// whether or not the move itself was accepted.
func (s *Store) MovePlayer(dx, dy float64) {
	if s.phase != PhasePlaying {
		return
	}

	bounds := Bounds{Width: s.tmpl.Width, Height: s.tmpl.Height, Obstacles: s.tmpl.Obstacles}
	s.player.Pos, _ = Resolve(s.player.Pos, core.V(dx, dy), bounds, s.rules.Movement.CollisionRadius)

	if !AtExit(s.player.Pos, s.tmpl.Exit, s.rules.Movement.ExitRadius) {
		return
	}
	if active := s.ActiveHazards(); active > 0 {
		s.showNotice(NoticeMessage, 0, s.msgs.N("EXIT_BLOCKED", "EXIT_BLOCKED_PLURAL", active, active))
		s.publish(ExitBlockedEvent{FiresRemaining: active})
		return
	}
	s.completeLevel()
}

// CollectItem picks up itemID. Already collected or unknown items are ignored.
func (s *Store) CollectItem(itemID string) {
	if s.phase != PhasePlaying {
		return
	}
	i := s.collectibleIndex(itemID)
	if i < 0 || s.collectibles[i].Collected {
		return
	}

	c := &s.collectibles[i]
	c.Collected = true
	delta := 0
	switch c.Type {
	case level.Extinguisher:
		s.player.Inventory.Extinguishers++
		delta = s.rules.Scoring.Extinguisher
	case level.Mask:
		s.player.Inventory.Masks++
		delta = s.rules.Scoring.Mask
	case level.TipItem:
		if !s.tipsCollected.Has(c.TipID) {
			s.tipsCollected.Put(c.TipID)
			delta = s.rules.Scoring.Tip
			s.publish(TipFoundEvent{TipID: c.TipID})
			s.ShowTip(c.TipID)
		}
	}
	s.score += delta
	s.itemsCollected++
	s.publish(ItemCollectedEvent{ItemID: c.ID, Type: c.Type, ScoreDelta: delta})
}

// ExtinguishFire puts out fireID if the player holds an extinguisher and is
// within range, then tries to spawn a replacement extinguisher.
func (s *Store) ExtinguishFire(fireID string) {
	if s.phase != PhasePlaying || s.player.Inventory.Extinguishers < 1 {
		return
	}
	i := s.hazardIndex(fireID)
	if i < 0 || s.hazards[i].Extinguished {
		return
	}
	h := &s.hazards[i]
	if core.Dist(s.player.Pos, h.Pos) > s.rules.Hazards.ExtinguishRange {
		return
	}

	h.Extinguished = true
	s.player.Inventory.Extinguishers--
	delta := FireScore(h.Size, s.rules.Scoring)
	s.score += delta
	s.firesExtinguished++
	s.publish(HazardExtinguishedEvent{HazardID: h.ID, ScoreDelta: delta, Remaining: s.ActiveHazards()})

	s.spawnExtinguisher()
}

func (s *Store) completeLevel() {
	st := s.progress[s.levelID]
	st.Completed = true

	s.lastBonus = CompletionBonus(s.timeRemaining, s.player.Health, s.rules.Scoring)
	s.score += s.lastBonus.Time + s.lastBonus.Health

	rec := LevelScore{
		LevelID:           s.levelID,
		Score:             s.score,
		TimeRemaining:     s.timeRemaining,
		FiresExtinguished: s.firesExtinguished,
		ItemsCollected:    s.itemsCollected,
		TipsFound:         s.tipsCollected.Size(),
		CompletedAt:       s.now(),
	}
	s.history = append(s.history, rec)

	s.setPhase(PhaseLevelComplete)
	s.publish(LevelCompletedEvent{Record: rec, Bonus: s.lastBonus})

	if s.sink != nil {
		if err := s.sink.SaveLevelScore(rec); err != nil {
			s.logger.Warn("cannot mirror level score", "level", rec.LevelID, "err", err)
		}
	}
	s.UnlockNextLevel()
}

// UnlockNextLevel unlocks the level after the current one if it exists.
func (s *Store) UnlockNextLevel() {
	next, ok := s.progress[s.levelID+1]
	if !ok || next.Unlocked {
		return
	}
	next.Unlocked = true
	s.publish(LevelUnlockedEvent{LevelID: next.ID})
}

// DecreaseTime counts the level timer down one second; at zero the level is lost.
func (s *Store) DecreaseTime() {
	if s.phase != PhasePlaying {
		return
	}
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.gameOver(ReasonTimeUp)
		return
	}
	s.timeRemaining--
}

// UpdatePlayerOxygen changes oxygen by delta. An empty tank costs health.
func (s *Store) UpdatePlayerOxygen(delta float64) {
	if s.phase != PhasePlaying {
		return
	}
	s.player.Oxygen = core.ClampF(s.player.Oxygen+delta, 0, MaxOxygen)
	if s.player.Oxygen > 0 {
		return
	}
	health := s.player.Health - s.rules.Oxygen.EmptyPenalty
	if health <= 0 {
		s.player.Health = 0
		s.gameOver(ReasonOxygen)
		return
	}
	s.player.Health = math.Min(health, MaxHealth)
}

// UpdatePlayerHealth changes health by delta; at zero the level is lost.
func (s *Store) UpdatePlayerHealth(delta float64) {
	if s.phase != PhasePlaying {
		return
	}
	s.player.Health = core.ClampF(s.player.Health+delta, 0, MaxHealth)
	if s.player.Health <= 0 {
		s.gameOver(ReasonHealth)
	}
}

// GetHighScores returns the completed-level records for levelID, best first.
func (s *Store) GetHighScores(levelID int) []LevelScore {
	var out []LevelScore
	for _, rec := range s.history {
		if rec.LevelID == levelID {
			out = append(out, rec)
		}
	}
	slices.SortStableFunc(out, func(a, b LevelScore) int { return b.Score - a.Score })
	return out
}

func (s *Store) hazardIndex(id string) int {
	return slices.IndexFunc(s.hazards, func(h HazardState) bool { return h.ID == id })
}

func (s *Store) collectibleIndex(id string) int {
	return slices.IndexFunc(s.collectibles, func(c CollectibleState) bool { return c.ID == id })
}
