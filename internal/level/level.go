// Package level holds the immutable level templates of the fire drill
// campaign: parsing, the ordered catalog, authoring checks and the safety
// tip catalog.
package level

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/fire-drill/internal/core"
)

// CollectibleType identifies what a collectible does when picked up.
type CollectibleType string

const (
	Extinguisher CollectibleType = "extinguisher"
	Mask         CollectibleType = "mask"
	TipItem      CollectibleType = "tip"
	ExitItem     CollectibleType = "exit"
)

// Valid reports whether t is one of the known collectible types.
func (t CollectibleType) Valid() bool {
	switch t {
	case Extinguisher, Mask, TipItem, ExitItem:
		return true
	}
	return false
}

// Hazard is an active fire as authored.
type Hazard struct {
	ID   string
	Pos  core.Vec
	Size float64
}

// Collectible is a pickup as authored. TipID is set only for tips.
type Collectible struct {
	ID    string
	Pos   core.Vec
	Type  CollectibleType
	TipID int
}

// Level is an immutable level template.
type Level struct {
	ID          int
	Name        string
	Description string
	Width       float64
	Height      float64
	Start       core.Vec
	Exit        core.Vec
	TimeLimit   int // seconds

	Hazards      []Hazard
	Collectibles []Collectible
	Obstacles    []core.Rect

	// Unlocked is the authored initial lock state.
	Unlocked bool
}

// Bounds returns the map rectangle.
func (l Level) Bounds() core.Rect {
	return core.NewRect(0, 0, l.Width, l.Height)
}

// Clone returns a deep copy so callers can never alias template slices.
func (l Level) Clone() Level {
	l.Hazards = slices.Clone(l.Hazards)
	l.Collectibles = slices.Clone(l.Collectibles)
	l.Obstacles = slices.Clone(l.Obstacles)
	return l
}

// CountTips returns how many tip collectibles the level contains.
func (l Level) CountTips() int {
	n := 0
	for _, c := range l.Collectibles {
		if c.Type == TipItem {
			n++
		}
	}
	return n
}

// DuplicateIDs lists entity ids used more than once. Hazards and
// collectibles share one namespace.
func (l Level) DuplicateIDs() []string {
	seen := mapset.New[string]()
	var dups []string
	check := func(id string) {
		if seen.Has(id) && !slices.Contains(dups, id) {
			dups = append(dups, id)
		}
		seen.Put(id)
	}
	for _, h := range l.Hazards {
		check(h.ID)
	}
	for _, c := range l.Collectibles {
		check(c.ID)
	}
	return dups
}
