package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/fire-drill/internal/config"
	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/level"
)

// testLevels is a three level campaign. Level 1 is a 20x15 room with a wall
// segment at x=8, two fires and a handful of items around the start.
func testLevels() []level.Level {
	return []level.Level{
		{
			ID: 1, Name: "Drill Room", Width: 20, Height: 15,
			Start: core.V(2, 2), Exit: core.V(18, 13), TimeLimit: 120, Unlocked: true,
			Hazards: []level.Hazard{
				{ID: "fire1", Pos: core.V(5, 7), Size: 1},
				{ID: "fire2", Pos: core.V(15, 3), Size: 2},
			},
			Collectibles: []level.Collectible{
				{ID: "ext1", Pos: core.V(2, 3), Type: level.Extinguisher},
				{ID: "mask1", Pos: core.V(3, 2), Type: level.Mask},
				{ID: "tip1", Pos: core.V(1, 2), Type: level.TipItem, TipID: 1},
				{ID: "tip1b", Pos: core.V(4, 4), Type: level.TipItem, TipID: 1},
				{ID: "exit", Pos: core.V(18, 13), Type: level.ExitItem},
			},
			Obstacles: []core.Rect{core.NewRect(8, 0, 1, 6)},
		},
		{
			ID: 2, Name: "Second", Width: 10, Height: 10,
			Start: core.V(1, 1), Exit: core.V(8, 8), TimeLimit: 60,
		},
		{
			ID: 3, Name: "Third", Width: 10, Height: 10,
			Start: core.V(1, 1), Exit: core.V(8, 8), TimeLimit: 60,
		},
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	cat, err := level.NewCatalog(testLevels())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	tips, err := level.DefaultTips()
	if err != nil {
		t.Fatalf("DefaultTips: %v", err)
	}
	opts = append([]Option{WithTips(tips), WithSeed(7)}, opts...)
	return NewStore(cat, opts...)
}

// recorder collects published events.
type recorder struct {
	events []Event
}

func (r *recorder) record(ev Event) { r.events = append(r.events, ev) }

func countEvents[T Event](events []Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

func TestStartGameGuards(t *testing.T) {
	s := newTestStore(t)

	s.StartGame(99)
	if s.Phase() != PhaseMenu || s.CurrentLevelID() != 0 {
		t.Fatalf("missing level: phase %s level %d", s.Phase(), s.CurrentLevelID())
	}
	s.StartGame(2)
	if s.Phase() != PhaseMenu {
		t.Fatalf("locked level started, phase %s", s.Phase())
	}

	s.StartGame(1)
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %s, expected playing", s.Phase())
	}
	p := s.Player()
	if p.Pos != core.V(2, 2) || p.Health != MaxHealth || p.Oxygen != MaxOxygen {
		t.Errorf("player = %+v", p)
	}
	if s.TimeRemaining() != 120 || s.Score() != 0 {
		t.Errorf("time %d score %d", s.TimeRemaining(), s.Score())
	}
}

func TestScenarioExtinguishNeedsExtinguisherAndRange(t *testing.T) {
	s := newTestStore(t)
	s.StartGame(1)

	s.ExtinguishFire("fire1")
	if s.Hazards()[0].Extinguished || s.Score() != 0 {
		t.Fatal("fire put out without an extinguisher")
	}

	s.CollectItem("ext1")
	if got := s.Player().Inventory.Extinguishers; got != 1 {
		t.Fatalf("extinguishers = %d, expected 1", got)
	}

	// (2,2) is about 5.8 away from (5,7).
	s.ExtinguishFire("fire1")
	if s.Hazards()[0].Extinguished {
		t.Fatal("fire put out from out of range")
	}

	// Exactly 3 away is still in range.
	s.player.Pos = core.V(5, 4)
	s.ExtinguishFire("fire1")
	if !s.Hazards()[0].Extinguished {
		t.Fatal("fire at distance 3 not extinguished")
	}
	if s.Score() != 50+150 {
		t.Errorf("score = %d, expected 200", s.Score())
	}
	if s.Player().Inventory.Extinguishers != 0 || s.FiresExtinguished() != 1 {
		t.Errorf("inventory %+v fires %d", s.Player().Inventory, s.FiresExtinguished())
	}

	// Extinguished stays extinguished; a second spray is ignored.
	s.player.Inventory.Extinguishers = 1
	s.ExtinguishFire("fire1")
	if s.Score() != 200 || s.Player().Inventory.Extinguishers != 1 {
		t.Errorf("second spray changed state: score %d", s.Score())
	}
}

func TestCollectItem(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		score int
		ext   int
		masks int
		items int
		tips  []int
	}{
		{"extinguisher", []string{"ext1"}, 50, 1, 0, 1, nil},
		{"mask", []string{"mask1"}, 30, 0, 1, 1, nil},
		{"tip", []string{"tip1"}, 100, 0, 0, 1, []int{1}},
		{"same tip twice", []string{"tip1", "tip1b"}, 100, 0, 0, 2, []int{1}},
		{"collected twice", []string{"ext1", "ext1"}, 50, 1, 0, 1, nil},
		{"unknown id", []string{"nope"}, 0, 0, 0, 0, nil},
		{"exit marker", []string{"exit"}, 0, 0, 0, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			s.StartGame(1)
			for _, id := range tt.ids {
				s.CollectItem(id)
			}
			inv := s.Player().Inventory
			if s.Score() != tt.score {
				t.Errorf("score = %d, expected %d", s.Score(), tt.score)
			}
			if inv.Extinguishers != tt.ext || inv.Masks != tt.masks {
				t.Errorf("inventory = %+v", inv)
			}
			if s.ItemsCollected() != tt.items {
				t.Errorf("items = %d, expected %d", s.ItemsCollected(), tt.items)
			}
			if got := s.TipsCollected(); len(got) != len(tt.tips) {
				t.Errorf("tips = %v, expected %v", got, tt.tips)
			}
		})
	}
}

func TestCollectShowsTip(t *testing.T) {
	s := newTestStore(t)
	s.StartGame(1)

	s.CollectItem("tip1")
	n := s.Notice(NoticeTip)
	if !n.Visible || n.TipID != 1 || n.Text == "" {
		t.Fatalf("tip notice = %+v", n)
	}
	s.HideTip()
	if s.Notice(NoticeTip).Visible {
		t.Error("tip still visible after HideTip")
	}

	// A duplicate tip id scores nothing and shows nothing.
	s.CollectItem("tip1b")
	if s.Notice(NoticeTip).Visible {
		t.Error("duplicate tip opened the popup")
	}
}

func TestCommandsIgnoredOutsidePlaying(t *testing.T) {
	s := newTestStore(t)
	s.StartGame(1)
	s.PauseGame()
	if s.Phase() != PhasePaused {
		t.Fatalf("phase = %s, expected paused", s.Phase())
	}

	before := s.Snapshot(0)
	s.MovePlayer(1, 0)
	s.CollectItem("ext1")
	s.ExtinguishFire("fire1")
	s.DecreaseTime()
	s.UpdatePlayerHealth(-10)
	s.UpdatePlayerOxygen(-10)
	s.VitalsTick()
	after := s.Snapshot(0)
	if before.Hash() != after.Hash() {
		t.Error("paused store changed state")
	}

	s.PauseGame()
	if s.Phase() != PhasePaused {
		t.Error("pausing twice left paused")
	}
	s.ResumeGame()
	if s.Phase() != PhasePlaying {
		t.Errorf("phase = %s after resume", s.Phase())
	}
	s.ResumeGame()
	if s.Phase() != PhasePlaying {
		t.Errorf("resume while playing changed phase to %s", s.Phase())
	}
}

func TestVitalsRecoveryClampsAtMax(t *testing.T) {
	s := newTestStore(t)
	s.StartGame(1)

	for range 5 {
		s.VitalsTick()
	}
	if s.Player().Oxygen != MaxOxygen {
		t.Errorf("oxygen = %v, expected %v", s.Player().Oxygen, MaxOxygen)
	}
}

func TestCriticalZoneEndsGame(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.record)
	s.StartGame(1)

	s.player.Health = 3
	s.player.Pos = core.V(5, 6.5)
	s.VitalsTick()

	if s.Player().Health != 0 {
		t.Errorf("health = %v, expected 0", s.Player().Health)
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s, expected gameOver", s.Phase())
	}
	var over GameOverEvent
	for _, ev := range rec.events {
		if e, ok := ev.(GameOverEvent); ok {
			over = e
		}
	}
	if over.Reason != ReasonHealth {
		t.Errorf("reason = %q, expected health", over.Reason)
	}
}

func TestDecreaseTimeAtZero(t *testing.T) {
	s := newTestStore(t)
	s.StartGame(1)

	s.DecreaseTime()
	if s.TimeRemaining() != 119 {
		t.Fatalf("time = %d, expected 119", s.TimeRemaining())
	}

	s.timeRemaining = 0
	s.DecreaseTime()
	if s.Phase() != PhaseGameOver || s.TimeRemaining() != 0 {
		t.Errorf("phase %s time %d", s.Phase(), s.TimeRemaining())
	}
	s.DecreaseTime()
	if s.TimeRemaining() != 0 {
		t.Errorf("time went negative: %d", s.TimeRemaining())
	}
}

func TestVitalsClamp(t *testing.T) {
	s := newTestStore(t)
	s.StartGame(1)

	deltas := []float64{50, -30, 200, -12.5, 7}
	for _, d := range deltas {
		s.UpdatePlayerHealth(d)
		s.UpdatePlayerOxygen(d)
		p := s.Player()
		if p.Health < 0 || p.Health > MaxHealth || p.Oxygen < 0 || p.Oxygen > MaxOxygen {
			t.Fatalf("after %v: health %v oxygen %v", d, p.Health, p.Oxygen)
		}
	}

	s.UpdatePlayerHealth(-500)
	if s.Player().Health != 0 || s.Phase() != PhaseGameOver {
		t.Errorf("health %v phase %s", s.Player().Health, s.Phase())
	}
}

func TestEmptyOxygenCostsHealth(t *testing.T) {
	s := newTestStore(t)
	s.StartGame(1)

	s.player.Oxygen = 1
	s.UpdatePlayerOxygen(-5)
	if p := s.Player(); p.Oxygen != 0 || p.Health != 95 {
		t.Fatalf("oxygen %v health %v", p.Oxygen, p.Health)
	}

	rec := &recorder{}
	s.Subscribe(rec.record)
	s.player.Health = 5
	s.UpdatePlayerOxygen(-1)
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s, expected gameOver", s.Phase())
	}
	for _, ev := range rec.events {
		if e, ok := ev.(GameOverEvent); ok && e.Reason != ReasonOxygen {
			t.Errorf("reason = %q, expected oxygen", e.Reason)
		}
	}
}

func TestExtinguishSpawnsReplacement(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.record)
	s.StartGame(1)

	s.player.Inventory.Extinguishers = 1
	s.player.Pos = core.V(14, 3)
	s.ExtinguishFire("fire2")

	if s.Score() != 200 {
		t.Errorf("score = %d, expected 200", s.Score())
	}

	items := s.Collectibles()
	if len(items) != len(testLevels()[0].Collectibles)+1 {
		t.Fatalf("collectibles = %d, expected one spawned", len(items))
	}
	spawned := items[len(items)-1]
	if !spawned.Spawned || spawned.Type != level.Extinguisher || !strings.HasPrefix(spawned.ID, "ext-") {
		t.Fatalf("spawned = %+v", spawned)
	}

	clearance := s.Rules().Spawn.Clearance
	p := spawned.Pos
	if core.Dist(p, s.Player().Pos) < clearance || core.Dist(p, s.Level().Exit) < clearance {
		t.Errorf("spawn %v too close to player or exit", p)
	}
	if Blocked(p, s.Level().Obstacles, clearance) {
		t.Errorf("spawn %v too close to an obstacle", p)
	}
	for _, h := range s.Hazards() {
		if !h.Extinguished && core.Dist(p, h.Pos) < clearance {
			t.Errorf("spawn %v too close to %s", p, h.ID)
		}
	}
	for _, c := range items[:len(items)-1] {
		if !c.Collected && core.Dist(p, c.Pos) < clearance {
			t.Errorf("spawn %v too close to %s", p, c.ID)
		}
	}

	if countEvents[ExtinguisherSpawnedEvent](rec.events) != 1 {
		t.Error("no ExtinguisherSpawnedEvent")
	}
	if !s.Notice(NoticeMessage).Visible {
		t.Error("spawn notice not shown")
	}
	// The template is untouched.
	if len(s.Level().Collectibles) != len(testLevels()[0].Collectibles) {
		t.Error("spawned item leaked into the template")
	}
}

func TestSpawnExhaustion(t *testing.T) {
	// No point of a 2x2 map is two units away from its centre.
	lv := level.Level{
		ID: 1, Name: "Closet", Width: 2, Height: 2, Unlocked: true,
		Start: core.V(1, 1), Exit: core.V(1, 1.5), TimeLimit: 30,
		Hazards: []level.Hazard{{ID: "f", Pos: core.V(1, 0.5), Size: 1}},
	}
	cat, err := level.NewCatalog([]level.Level{lv})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	rules := config.DefaultRules()
	rules.Spawn.Clearance = 2
	s := NewStore(cat, WithSeed(3), WithRules(rules))
	rec := &recorder{}
	s.Subscribe(rec.record)
	s.StartGame(1)
	s.player.Inventory.Extinguishers = 1

	s.ExtinguishFire("f")
	if !s.Hazards()[0].Extinguished {
		t.Fatal("fire not extinguished")
	}
	if len(s.Collectibles()) != 0 {
		t.Errorf("spawned %d items in a full room", len(s.Collectibles()))
	}
	if countEvents[SpawnFailedEvent](rec.events) != 1 {
		t.Error("no SpawnFailedEvent")
	}
	if !s.Notice(NoticeMessage).Visible {
		t.Error("failure notice not shown")
	}
}

func TestExitBlockedUntilFiresOut(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.record)
	s.StartGame(1)

	s.player.Pos = core.V(18, 11.5)
	s.MovePlayer(0, 0.5)
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %s with fires burning", s.Phase())
	}
	if n := s.Notice(NoticeMessage); !n.Visible || !strings.Contains(n.Text, "2 fires") {
		t.Errorf("blocked notice = %+v", n)
	}
	if countEvents[ExitBlockedEvent](rec.events) != 1 {
		t.Error("no ExitBlockedEvent")
	}

	for i := range s.hazards {
		s.hazards[i].Extinguished = true
	}
	s.MovePlayer(0, 0.5)
	if s.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %s, expected levelComplete", s.Phase())
	}

	bonus := s.LastBonus()
	if bonus.Time != 120*5 || bonus.Health != 200 {
		t.Errorf("bonus = %+v", bonus)
	}
	if s.Score() != 800 {
		t.Errorf("score = %d, expected 800", s.Score())
	}
}

func TestProgression(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.record)
	s.StartGame(1)
	completeCurrent(s)

	st1, _ := s.LevelStatus(1)
	st2, _ := s.LevelStatus(2)
	st3, _ := s.LevelStatus(3)
	if !st1.Completed || !st1.Unlocked {
		t.Errorf("level 1 = %+v", st1)
	}
	if !st2.Unlocked || st2.Completed {
		t.Errorf("level 2 = %+v", st2)
	}
	if st3.Unlocked {
		t.Error("level 3 unlocked by completing level 1")
	}
	if countEvents[LevelUnlockedEvent](rec.events) != 1 {
		t.Error("expected one LevelUnlockedEvent")
	}

	// Idempotent.
	s.UnlockNextLevel()
	if countEvents[LevelUnlockedEvent](rec.events) != 1 {
		t.Error("UnlockNextLevel published twice")
	}

	next, ok := s.NextUnlockedLevel()
	if !ok || next != 2 {
		t.Errorf("next = %d %v", next, ok)
	}
}

func TestProgressionLastLevel(t *testing.T) {
	cat, err := level.NewCatalog([]level.Level{{
		ID: 5, Name: "Only", Width: 10, Height: 10, Unlocked: true,
		Start: core.V(1, 1), Exit: core.V(2, 1), TimeLimit: 10,
	}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	s := NewStore(cat)
	rec := &recorder{}
	s.Subscribe(rec.record)
	s.StartGame(5)
	s.MovePlayer(0, 0)

	if s.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %s", s.Phase())
	}
	if countEvents[LevelUnlockedEvent](rec.events) != 0 {
		t.Error("unlocked a level that does not exist")
	}
	if len(s.Levels()) != 1 {
		t.Errorf("levels = %+v", s.Levels())
	}
}

// completeCurrent puts out every fire and walks onto the exit.
func completeCurrent(s *Store) {
	for i := range s.hazards {
		s.hazards[i].Extinguished = true
	}
	s.player.Pos = s.tmpl.Exit
	s.MovePlayer(0, 0)
}

type memSink struct {
	saved []LevelScore
	err   error
}

func (m *memSink) SaveLevelScore(rec LevelScore) error {
	m.saved = append(m.saved, rec)
	return m.err
}

func TestHighScoresAndSink(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sink := &memSink{err: errors.New("disk full")}
	s := newTestStore(t, WithScoreSink(sink), WithClock(func() time.Time { return now }))

	s.StartGame(1)
	s.timeRemaining = 10
	completeCurrent(s)
	low := s.Score()

	s.RestartLevel()
	s.CollectItem("tip1")
	completeCurrent(s)
	high := s.Score()

	scores := s.GetHighScores(1)
	if len(scores) != 2 {
		t.Fatalf("scores = %+v", scores)
	}
	if scores[0].Score != high || scores[1].Score != low || high <= low {
		t.Errorf("order = %d, %d (high %d low %d)", scores[0].Score, scores[1].Score, high, low)
	}
	if scores[0].TipsFound != 1 || !scores[0].CompletedAt.Equal(now) {
		t.Errorf("record = %+v", scores[0])
	}
	if len(s.GetHighScores(2)) != 0 {
		t.Error("scores for unplayed level")
	}
	// A failing sink never blocks completion.
	if len(sink.saved) != 2 {
		t.Errorf("sink saw %d records", len(sink.saved))
	}
}

func TestRestartRebuildsOverlay(t *testing.T) {
	s := newTestStore(t)
	s.StartGame(1)
	s.CollectItem("ext1")
	s.CollectItem("tip1")
	s.player.Pos = core.V(5, 5)
	s.ExtinguishFire("fire1")
	s.PauseGame()

	s.RestartLevel()
	if s.Phase() != PhasePlaying || s.Score() != 0 || s.FiresExtinguished() != 0 || s.ItemsCollected() != 0 {
		t.Fatalf("restart left state: phase %s score %d", s.Phase(), s.Score())
	}
	if len(s.TipsCollected()) != 0 {
		t.Error("tips survived restart")
	}
	for _, h := range s.Hazards() {
		if h.Extinguished {
			t.Errorf("%s still extinguished", h.ID)
		}
	}
	for _, c := range s.Collectibles() {
		if c.Collected || c.Spawned {
			t.Errorf("collectible %+v survived restart", c)
		}
	}
	if s.Player().Pos != core.V(2, 2) {
		t.Errorf("player at %v", s.Player().Pos)
	}
}

func TestGameOverAndExit(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.record)

	s.StartGame(1)
	s.CollectItem("mask1")
	s.GameOver()
	s.GameOver()
	if countEvents[GameOverEvent](rec.events) != 1 {
		t.Error("GameOver published twice")
	}
	if s.Score() != 30 {
		t.Errorf("score reset by GameOver: %d", s.Score())
	}

	s.ExitLevel()
	if s.Phase() != PhaseMenu {
		t.Errorf("phase = %s after ExitLevel", s.Phase())
	}
}

func TestSubscribeOrderAndUnsubscribe(t *testing.T) {
	s := newTestStore(t)
	var order []string
	s.Subscribe(func(Event) { order = append(order, "a") })
	unsub := s.Subscribe(func(Event) { order = append(order, "b") })

	s.PauseGame() // no-op, no event
	s.StartGame(1)
	n := len(order)
	if n == 0 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order = %v", order)
	}

	unsub()
	s.PauseGame()
	if len(order) != n+1 || order[n] != "a" {
		t.Errorf("after unsubscribe order = %v", order)
	}
}

func TestTemplatesNotAliased(t *testing.T) {
	s := newTestStore(t)
	s.StartGame(1)
	s.player.Inventory.Extinguishers = 1
	s.player.Pos = core.V(5, 5)
	s.ExtinguishFire("fire1")

	s.ExitLevel()
	s.StartGame(1)
	if s.Hazards()[0].Extinguished {
		t.Error("overlay carried over into a new session")
	}
	hs := s.Hazards()
	hs[0].Extinguished = true
	if s.Hazards()[0].Extinguished {
		t.Error("Hazards returned an alias")
	}
}
