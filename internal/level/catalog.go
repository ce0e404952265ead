package level

import (
	"fmt"
	"slices"
)

// Catalog is the ordered, read-only collection of level templates.
// Ordering by id is display and progression order.
type Catalog struct {
	levels []Level
	index  map[int]int
}

// NewCatalog builds a catalog from templates. Level ids must be unique and
// positive, and entity ids unique within each level.
func NewCatalog(levels []Level) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("level: catalog is empty")
	}

	c := &Catalog{
		levels: make([]Level, 0, len(levels)),
		index:  make(map[int]int, len(levels)),
	}
	for _, l := range levels {
		if l.ID <= 0 {
			return nil, fmt.Errorf("level: invalid id %d for %q", l.ID, l.Name)
		}
		if _, dup := c.index[l.ID]; dup {
			return nil, fmt.Errorf("level: duplicate level id %d", l.ID)
		}
		if dups := l.DuplicateIDs(); len(dups) > 0 {
			return nil, fmt.Errorf("level %d: duplicate entity ids %q", l.ID, dups)
		}
		c.index[l.ID] = 0
		c.levels = append(c.levels, l.Clone())
	}

	slices.SortFunc(c.levels, func(a, b Level) int { return a.ID - b.ID })
	for i, l := range c.levels {
		c.index[l.ID] = i
	}
	return c, nil
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Levels returns copies of all templates in id order.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	for i, l := range c.levels {
		out[i] = l.Clone()
	}
	return out
}

// Get returns a copy of the template with the given id.
func (c *Catalog) Get(id int) (Level, bool) {
	i, ok := c.index[id]
	if !ok {
		return Level{}, false
	}
	return c.levels[i].Clone(), true
}

// Has reports whether the catalog contains id.
func (c *Catalog) Has(id int) bool {
	_, ok := c.index[id]
	return ok
}

// First returns the lowest-id template.
func (c *Catalog) First() Level {
	return c.levels[0].Clone()
}

// IDs returns all level ids in order.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.levels))
	for i, l := range c.levels {
		ids[i] = l.ID
	}
	return ids
}
