package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Section defines one top-level content section in site.yaml.
type Section struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Order int    `yaml:"order" json:"order"`
}

// BlogConfig tunes aggregate listings.
type BlogConfig struct {
	PostsPerPage         int      `yaml:"postsPerPage" json:"postsPerPage"`
	MinTagFrequency      int      `yaml:"minTagFrequency" json:"minTagFrequency"`
	IncludeSections      []string `yaml:"includeSections" json:"includeSections,omitempty"`
	ExcludeSections      []string `yaml:"excludeSections" json:"excludeSections,omitempty"`
	DefaultSort          string   `yaml:"defaultSort" json:"defaultSort"`
	DefaultSortDirection string   `yaml:"defaultSortDirection" json:"defaultSortDirection"`
}

// SiteConfig is the site-wide content configuration read from site.yaml at
// the content root.
type SiteConfig struct {
	Sections []Section  `yaml:"sections" json:"sections"`
	Blog     BlogConfig `yaml:"blog" json:"blog"`
}

// LoadSite reads site.yaml from the content root. A missing file yields an
// empty SiteConfig with defaults applied, not an error.
func LoadSite(contentRoot string) (*SiteConfig, error) {
	site := &SiteConfig{}

	data, err := os.ReadFile(filepath.Join(contentRoot, "site.yaml"))
	if err == nil {
		if err := yaml.Unmarshal(data, site); err != nil {
			return nil, fmt.Errorf("parse site.yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read site.yaml: %w", err)
	}

	if site.Blog.PostsPerPage <= 0 {
		site.Blog.PostsPerPage = DefaultPostsPerPage
	}
	if site.Blog.MinTagFrequency <= 0 {
		site.Blog.MinTagFrequency = DefaultMinTagFrequency
	}
	if site.Blog.DefaultSort == "" {
		site.Blog.DefaultSort = DefaultSortField
	}
	if site.Blog.DefaultSortDirection == "" {
		site.Blog.DefaultSortDirection = DefaultSortDirection
	}

	sort.SliceStable(site.Sections, func(i, j int) bool {
		return site.Sections[i].Order < site.Sections[j].Order
	})
	return site, nil
}

// SectionName returns the display name configured for a section id, falling
// back to the id itself.
func (s *SiteConfig) SectionName(id string) string {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec.Name
		}
	}
	return id
}

// SectionIncluded reports whether a section participates in aggregate blog
// listings, honoring includeSections/excludeSections.
func (s *SiteConfig) SectionIncluded(id string) bool {
	for _, ex := range s.Blog.ExcludeSections {
		if ex == id {
			return false
		}
	}
	if len(s.Blog.IncludeSections) == 0 {
		return true
	}
	for _, in := range s.Blog.IncludeSections {
		if in == id {
			return true
		}
	}
	return false
}
