package level

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/fire-drill/internal/core"
)

// Severity grades an authoring issue.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is an authoring problem found by Check. LevelID is 0 for issues
// that concern the whole catalog.
type Issue struct {
	LevelID  int
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	if i.LevelID == 0 {
		return fmt.Sprintf("catalog: %s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("level %d: %s: %s", i.LevelID, i.Severity, i.Message)
}

// CheckOptions carries the movement geometry the checks simulate.
type CheckOptions struct {
	CollisionRadius float64
	ExitRadius      float64
	InteractRadius  float64
	ExtinguishRange float64
	Step            float64
	Tips            *Tips // nil skips tip id checks
}

// DefaultCheckOptions mirrors the default movement rules.
func DefaultCheckOptions() CheckOptions {
	return CheckOptions{
		CollisionRadius: 0.4,
		ExitRadius:      1.5,
		InteractRadius:  1.5,
		ExtinguishRange: 3.0,
		Step:            0.5,
	}
}

// CheckCatalog runs Check on every level plus the catalog-wide progression checks.
func CheckCatalog(c *Catalog, opts CheckOptions) []Issue {
	var issues []Issue
	levels := c.Levels()

	if !levels[0].Unlocked {
		issues = append(issues, Issue{levels[0].ID, SeverityError, "first level is locked, nothing is playable"})
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].ID != levels[i-1].ID+1 {
			issues = append(issues, Issue{levels[i].ID, SeverityWarning,
				fmt.Sprintf("id gap after level %d, completing it unlocks nothing", levels[i-1].ID)})
		}
	}
	placed := mapset.New[int]()
	for _, l := range levels {
		issues = append(issues, Check(l, opts)...)
		for _, c := range l.Collectibles {
			if c.Type == TipItem {
				placed.Put(c.TipID)
			}
		}
	}
	for _, tip := range opts.Tips.All() {
		if !placed.Has(tip.ID) {
			issues = append(issues, Issue{0, SeverityWarning,
				fmt.Sprintf("tip %d %q is not placed in any level", tip.ID, tip.Title)})
		}
	}
	return issues
}

// Check reports authoring problems in one level: out-of-bounds entities,
// duplicate ids, unknown tips, a trapped start, an unreachable exit and
// fires that can never be put out. The exit stays closed while any fire
// burns, so the last two are both fatal.
func Check(l Level, opts CheckOptions) []Issue {
	var issues []Issue
	add := func(sev Severity, format string, args ...any) {
		issues = append(issues, Issue{LevelID: l.ID, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	bounds := l.Bounds()
	if !bounds.Contains(l.Start) {
		add(SeverityError, "start %v is outside the %vx%v map", l.Start, l.Width, l.Height)
	}
	if !bounds.Contains(l.Exit) {
		add(SeverityError, "exit %v is outside the %vx%v map", l.Exit, l.Width, l.Height)
	}

	ids := mapset.New[string]()
	for _, h := range l.Hazards {
		if ids.Has(h.ID) {
			add(SeverityError, "duplicate entity id %q", h.ID)
		}
		ids.Put(h.ID)
		if !bounds.Contains(h.Pos) {
			add(SeverityError, "hazard %s at %v is outside the map", h.ID, h.Pos)
		}
	}
	for _, c := range l.Collectibles {
		if ids.Has(c.ID) {
			add(SeverityError, "duplicate entity id %q", c.ID)
		}
		ids.Put(c.ID)
		if !bounds.Contains(c.Pos) {
			add(SeverityError, "collectible %s at %v is outside the map", c.ID, c.Pos)
		}
		if c.Type == TipItem && opts.Tips != nil {
			if _, ok := opts.Tips.Get(c.TipID); !ok {
				add(SeverityError, "collectible %s references unknown tip %d", c.ID, c.TipID)
			}
		}
	}

	for i, o := range l.Obstacles {
		if !bounds.Intersects(o) {
			add(SeverityWarning, "obstacle %d at %v lies entirely outside the map", i, o)
		}
	}

	if blockedAt(l.Obstacles, opts.CollisionRadius, l.Start) {
		add(SeverityError, "start %v is inside an obstacle, the player cannot move", l.Start)
		return issues
	}

	reach := reachable(l, opts)
	if reach.distance(l.Exit) >= opts.ExitRadius {
		add(SeverityError, "exit %v cannot be reached from start %v", l.Exit, l.Start)
	}
	for _, h := range l.Hazards {
		if reach.distance(h.Pos) > opts.ExtinguishRange {
			add(SeverityError, "hazard %s at %v is out of extinguisher range from every reachable position", h.ID, h.Pos)
		}
	}
	for _, c := range l.Collectibles {
		if c.Type == ExitItem {
			continue
		}
		if reach.distance(c.Pos) >= opts.InteractRadius {
			add(SeverityWarning, "collectible %s at %v cannot be picked up", c.ID, c.Pos)
		}
	}
	return issues
}

func blockedAt(obstacles []core.Rect, radius float64, p core.Vec) bool {
	for _, o := range obstacles {
		if o.Inflate(radius).ContainsStrict(p) {
			return true
		}
	}
	return false
}

type cell [2]int

// reachSet is the set of grid positions the player can stand on.
type reachSet struct {
	origin  core.Vec
	step    float64
	visited mapset.Set[cell]
}

func (r reachSet) pos(c cell) core.Vec {
	return core.V(r.origin.X+float64(c[0])*r.step, r.origin.Y+float64(c[1])*r.step)
}

// distance returns how close the player can get to p.
func (r reachSet) distance(p core.Vec) float64 {
	best := math.Inf(1)
	r.visited.Each(func(c cell) {
		best = math.Min(best, core.Dist(r.pos(c), p))
	})
	return best
}

// reachable flood-fills the positions reachable from the start using the
// same step and full-rejection collision as player movement.
func reachable(l Level, opts CheckOptions) reachSet {
	r := reachSet{origin: l.Start, step: opts.Step, visited: mapset.New[cell]()}
	if r.step <= 0 {
		r.visited.Put(cell{})
		return r
	}

	bounds := l.Bounds()
	queue := []cell{{0, 0}}
	r.visited.Put(cell{0, 0})

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range []cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := cell{cur[0] + d[0], cur[1] + d[1]}
			if r.visited.Has(next) {
				continue
			}
			p := r.pos(next)
			if !bounds.Contains(p) || blockedAt(l.Obstacles, opts.CollisionRadius, p) {
				continue
			}
			r.visited.Put(next)
			queue = append(queue, next)
		}
	}
	return r
}
