package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PagesConfig is the optional per-directory ordering override read from a
// ".pages" file. Order reorders collection items; Nav reorders sidebar
// entries. Absence means "keep natural order".
type PagesConfig struct {
	Nav   []string `yaml:"nav" json:"nav"`
	Order []string `yaml:"order" json:"order,omitempty"`
}

// LoadPages reads the ".pages" file in dir. A missing file is not an error
// and yields an empty config. A malformed file also yields an empty config,
// plus the parse error so the caller can log it; the page still renders.
func LoadPages(dir string) (*PagesConfig, error) {
	empty := &PagesConfig{Nav: []string{}}

	data, err := os.ReadFile(filepath.Join(dir, ".pages"))
	if os.IsNotExist(err) {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("read .pages in %s: %w", dir, err)
	}

	cfg := &PagesConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return empty, fmt.Errorf("parse .pages in %s: %w", dir, err)
	}
	if cfg.Nav == nil {
		cfg.Nav = []string{}
	}
	return cfg, nil
}

// OrderPositions builds a name→position map from the override's order list.
// Items absent from the list get no entry; callers treat that as "sort last,
// keep natural order among themselves".
func (p *PagesConfig) OrderPositions() map[string]int {
	if p == nil || len(p.Order) == 0 {
		return nil
	}
	pos := make(map[string]int, len(p.Order))
	for i, name := range p.Order {
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}
	return pos
}

// NavPositions is OrderPositions for the sidebar nav list.
func (p *PagesConfig) NavPositions() map[string]int {
	if p == nil || len(p.Nav) == 0 {
		return nil
	}
	pos := make(map[string]int, len(p.Nav))
	for i, name := range p.Nav {
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}
	return pos
}
