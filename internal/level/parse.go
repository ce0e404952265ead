package level

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/fire-drill/internal/core"
)

type pointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type hazardSpec struct {
	ID   string  `yaml:"id"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Size float64 `yaml:"size"`
}

type collectibleSpec struct {
	ID   string          `yaml:"id"`
	X    float64         `yaml:"x"`
	Y    float64         `yaml:"y"`
	Type CollectibleType `yaml:"type"`
	Tip  int             `yaml:"tip"`
}

type rectSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// levelSpec is the on-disk shape of a level file.
type levelSpec struct {
	ID           int               `yaml:"id"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	Width        float64           `yaml:"width"`
	Height       float64           `yaml:"height"`
	Start        pointSpec         `yaml:"start"`
	Exit         pointSpec         `yaml:"exit"`
	TimeLimit    int               `yaml:"time_limit"`
	Unlocked     bool              `yaml:"unlocked"`
	Hazards      []hazardSpec      `yaml:"hazards"`
	Collectibles []collectibleSpec `yaml:"collectibles"`
	Obstacles    []rectSpec        `yaml:"obstacles"`
}

// Parse decodes one level file and checks the fields the simulation relies on.
func Parse(data []byte) (Level, error) {
	var spec levelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Level{}, fmt.Errorf("level: failed to parse: %w", err)
	}
	if err := spec.check(); err != nil {
		return Level{}, fmt.Errorf("level %d: %w", spec.ID, err)
	}
	l := spec.build()
	if dups := l.DuplicateIDs(); len(dups) > 0 {
		return Level{}, fmt.Errorf("level %d: duplicate entity ids %q", spec.ID, dups)
	}
	return l, nil
}

func (s levelSpec) check() error {
	var errs []error
	if s.ID <= 0 {
		errs = append(errs, fmt.Errorf("id must be positive, got %d", s.ID))
	}
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("map size must be positive, got %vx%v", s.Width, s.Height))
	}
	if s.TimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("time_limit must be positive, got %d", s.TimeLimit))
	}
	for _, h := range s.Hazards {
		if h.ID == "" {
			errs = append(errs, errors.New("hazard without id"))
		}
		if h.Size <= 0 {
			errs = append(errs, fmt.Errorf("hazard %s: size must be positive", h.ID))
		}
	}
	for _, c := range s.Collectibles {
		if c.ID == "" {
			errs = append(errs, errors.New("collectible without id"))
		}
		if !c.Type.Valid() {
			errs = append(errs, fmt.Errorf("collectible %s: unknown type %q", c.ID, c.Type))
		}
		if c.Type == TipItem && c.Tip <= 0 {
			errs = append(errs, fmt.Errorf("collectible %s: tip without tip id", c.ID))
		}
	}
	for i, o := range s.Obstacles {
		if o.W <= 0 || o.H <= 0 {
			errs = append(errs, fmt.Errorf("obstacle %d: size must be positive", i))
		}
	}
	return errors.Join(errs...)
}

func (s levelSpec) build() Level {
	l := Level{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Width:       s.Width,
		Height:      s.Height,
		Start:       core.V(s.Start.X, s.Start.Y),
		Exit:        core.V(s.Exit.X, s.Exit.Y),
		TimeLimit:   s.TimeLimit,
		Unlocked:    s.Unlocked,
	}
	for _, h := range s.Hazards {
		l.Hazards = append(l.Hazards, Hazard{ID: h.ID, Pos: core.V(h.X, h.Y), Size: h.Size})
	}
	for _, c := range s.Collectibles {
		item := Collectible{ID: c.ID, Pos: core.V(c.X, c.Y), Type: c.Type}
		if c.Type == TipItem {
			item.TipID = c.Tip
		}
		l.Collectibles = append(l.Collectibles, item)
	}
	for _, o := range s.Obstacles {
		l.Obstacles = append(l.Obstacles, core.NewRect(o.X, o.Y, o.W, o.H))
	}
	return l
}
