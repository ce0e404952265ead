package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

//go:embed data/levels/*.yaml
var campaignFS embed.FS

//go:embed data/tips.yaml
var defaultTipsYAML []byte

// Default returns the built-in five level campaign.
func Default() (*Catalog, error) {
	return LoadFS(campaignFS, "data/levels")
}

// DefaultTips returns the built-in safety tips.
func DefaultTips() (*Tips, error) {
	return ParseTips(defaultTipsYAML)
}

// LoadDir loads every *.yaml / *.yml level file in dir.
func LoadDir(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS loads every level file in dir of fsys into a catalog.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("level: failed to read %s: %w", dir, err)
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		name := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("level: failed to read %s: %w", name, err)
		}
		l, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		levels = append(levels, l)
	}
	return NewCatalog(levels)
}

// IsLevelFile reports whether name looks like a level file.
func IsLevelFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
