package level

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Tip is a fire safety tip shown when a tip collectible is picked up.
type Tip struct {
	ID      int    `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// Tips is the read-only safety tip catalog.
type Tips struct {
	tips []Tip
	byID map[int]Tip
}

type tipsFile struct {
	Tips []Tip `yaml:"tips"`
}

// ParseTips decodes a tips file.
func ParseTips(data []byte) (*Tips, error) {
	var f tipsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("level: failed to parse tips: %w", err)
	}

	t := &Tips{byID: make(map[int]Tip, len(f.Tips))}
	for _, tip := range f.Tips {
		if tip.ID <= 0 {
			return nil, fmt.Errorf("level: tip %q has invalid id %d", tip.Title, tip.ID)
		}
		if _, dup := t.byID[tip.ID]; dup {
			return nil, fmt.Errorf("level: duplicate tip id %d", tip.ID)
		}
		t.byID[tip.ID] = tip
		t.tips = append(t.tips, tip)
	}
	slices.SortFunc(t.tips, func(a, b Tip) int { return a.ID - b.ID })
	return t, nil
}

// Get returns the tip with the given id.
func (t *Tips) Get(id int) (Tip, bool) {
	if t == nil {
		return Tip{}, false
	}
	tip, ok := t.byID[id]
	return tip, ok
}

// All returns every tip in id order.
func (t *Tips) All() []Tip {
	if t == nil {
		return nil
	}
	return slices.Clone(t.tips)
}

// Len returns the number of tips.
func (t *Tips) Len() int {
	if t == nil {
		return 0
	}
	return len(t.tips)
}
