package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRules loads the simulation rules.
// Search order: customPath -> ~/.firedrill/rules.yaml -> ./configs/rules.yaml -> embedded default
//
// Files are decoded over DefaultRules, so a partial file only overrides the
// keys it names.
func LoadRules(customPath string) (Rules, error) {
	cfg := DefaultRules()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("rules.yaml"); userCfgPath != "" {
		if r, ok := tryLoad(userCfgPath); ok {
			return r, nil
		}
	}

	// Try local configs directory
	if r, ok := tryLoad(filepath.Join("configs", "rules.yaml")); ok {
		return r, nil
	}

	// Use embedded default YAML
	cfg = DefaultRules()
	if err := yaml.Unmarshal(defaultRulesYAML, &cfg); err != nil {
		return DefaultRules(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional rules file. Unreadable or invalid files are skipped.
func tryLoad(path string) (Rules, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, false
	}
	cfg := DefaultRules()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Rules{}, false
	}
	if cfg.Validate() != nil {
		return Rules{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".firedrill", filename)
}
