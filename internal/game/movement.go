package game

import (
	"github.com/vovakirdan/fire-drill/internal/core"
)

// Bounds is the map a move is resolved against.
type Bounds struct {
	Width     float64
	Height    float64
	Obstacles []core.Rect
}

// Resolve computes where a move of delta from pos ends up. The candidate is
// clamped to the map on each axis, then rejected in full if it lies strictly
// inside any obstacle grown by radius. There is no sliding along walls.
func Resolve(pos, delta core.Vec, b Bounds, radius float64) (core.Vec, bool) {
	candidate := core.V(
		core.ClampF(pos.X+delta.X, 0, b.Width),
		core.ClampF(pos.Y+delta.Y, 0, b.Height),
	)
	if Blocked(candidate, b.Obstacles, radius) {
		return pos, false
	}
	return candidate, true
}

// Blocked reports whether p is strictly inside any obstacle grown by radius.
func Blocked(p core.Vec, obstacles []core.Rect, radius float64) bool {
	for _, o := range obstacles {
		if o.Inflate(radius).ContainsStrict(p) {
			return true
		}
	}
	return false
}

// AtExit reports whether pos is strictly closer than radius to the exit.
func AtExit(pos, exit core.Vec, radius float64) bool {
	return core.Dist(pos, exit) < radius
}
