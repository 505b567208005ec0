// Package config provides configuration for the sitegen binary.
// Runtime settings load from: env vars > .sitegen/config.toml > built-in
// defaults. Content-side configuration (site.yaml, .pages) is YAML and lives
// in the content tree itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Listing defaults applied when site.yaml leaves blog tuning unset.
const (
	DefaultPostsPerPage    = 10
	DefaultMinTagFrequency = 1
	DefaultSortField       = "date"
	DefaultSortDirection   = "desc"
)

// DefaultSkipDirs are directory names excluded from content scans.
var DefaultSkipDirs = []string{".git", "node_modules", ".sitegen", "public"}

// Config holds sitegen runtime configuration, loaded from TOML + env.
type Config struct {
	Content ContentConfig `toml:"content"`
	Serve   ServeConfig   `toml:"serve"`
}

// ContentConfig holds content-tree settings.
type ContentConfig struct {
	Dir      string   `toml:"dir"`
	SkipDirs []string `toml:"skip_dirs"`
	CacheTTL string   `toml:"cache_ttl"` // Go duration string, e.g. "60s"
}

// ServeConfig holds local server settings.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Default returns a Config with all built-in defaults.
func Default() *Config {
	return &Config{
		Content: ContentConfig{
			Dir:      "content",
			SkipDirs: append([]string(nil), DefaultSkipDirs...),
			CacheTTL: "60s",
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8321",
		},
	}
}

// Load merges configuration sources: defaults < .sitegen/config.toml < env.
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(".sitegen", "config.toml"))
}

// LoadFrom is like Load but reads a specific TOML file path. A missing file
// is not an error; defaults and env vars still apply.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("SITEGEN_CONTENT_DIR"); v != "" {
		cfg.Content.Dir = v
	}
	if v := os.Getenv("SITEGEN_CACHE_TTL"); v != "" {
		cfg.Content.CacheTTL = v
	}
	if v := os.Getenv("SITEGEN_ADDR"); v != "" {
		cfg.Serve.Addr = v
	}
	if v := os.Getenv("SITEGEN_SKIP_DIRS"); v != "" {
		for _, d := range strings.Split(v, ",") {
			if d = strings.TrimSpace(d); d != "" {
				cfg.Content.SkipDirs = append(cfg.Content.SkipDirs, d)
			}
		}
	}

	return cfg, nil
}

// CacheTTL parses the configured cache TTL. Bare integers are treated as
// seconds; unparseable values fall back to the default.
func (c *Config) CacheTTL() time.Duration {
	raw := strings.TrimSpace(c.Content.CacheTTL)
	if raw == "" {
		return 60 * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return 60 * time.Second
}

// SkipDirSet returns the configured skip directories as a lookup set.
func (c *Config) SkipDirSet() map[string]bool {
	set := make(map[string]bool, len(c.Content.SkipDirs))
	for _, d := range c.Content.SkipDirs {
		set[d] = true
	}
	return set
}
