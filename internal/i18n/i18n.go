// Package i18n resolves player-facing text from gettext catalogues.
package i18n

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/en/default.po
var defaultPO []byte

// Catalog translates message keys.
type Catalog struct {
	po *gotext.Po
}

// Default returns the embedded English catalogue.
func Default() *Catalog {
	return Parse(defaultPO)
}

// Parse builds a catalogue from .po content.
func Parse(data []byte) *Catalog {
	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{po: po}
}

// LoadFile reads a .po file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("i18n: failed to read %s: %w", path, err)
	}
	return Parse(data), nil
}

// T returns the translation for key, formatted with args.
// Unknown keys and a nil catalog give back the bare key.
func (c *Catalog) T(key string, args ...any) string {
	if c == nil || c.po == nil {
		return key
	}
	return c.po.Get(key, args...)
}

// N returns the plural-aware translation for n items.
func (c *Catalog) N(key, plural string, n int, args ...any) string {
	if c == nil || c.po == nil {
		if n == 1 {
			return key
		}
		return plural
	}
	return c.po.GetN(key, plural, n, args...)
}
