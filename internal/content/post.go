// Package content scans a content tree into an in-memory, cached collection
// of parsed posts indexed by slug.
package content

import (
	"github.com/supernalintelligence/sitegen/internal/document"
	"github.com/supernalintelligence/sitegen/internal/slug"
)

// Post is the canonical content unit: one parsed markdown/MDX file
// addressed by its slug. Posts are immutable once a scan completes; a new
// cache generation replaces them wholesale.
type Post struct {
	Slug        string            `json:"slug"`
	IsIndex     bool              `json:"isIndex"`
	Meta        document.Metadata `json:"metadata"`
	Content     string            `json:"-"`
	HTML        string            `json:"-"`
	Excerpt     string            `json:"excerpt"`
	ReadingTime int               `json:"readingTime"`
	FilePath    string            `json:"-"`

	// ChildSlugs lists every post slug under this index post's directory
	// prefix. Populated only for index posts.
	ChildSlugs []string `json:"childSlugs,omitempty"`
	ChildPosts []*Post  `json:"-"`
}

// Title returns the frontmatter title, falling back to a humanized form of
// the slug's final content segment.
func (p *Post) Title() string {
	if p.Meta.Title != "" {
		return p.Meta.Title
	}
	base := slug.Base(p.Slug)
	if base == "index" {
		if dir := slug.TrimIndex(p.Slug); dir != "" {
			base = slug.Base(dir)
		}
	}
	return slug.Humanize(base)
}

// Section returns the first path segment of the post's slug.
func (p *Post) Section() string {
	return slug.Section(p.Slug)
}

// Dir returns the directory this post addresses: the slug itself for
// regular posts, the slug minus "/index" for index posts.
func (p *Post) Dir() string {
	if p.IsIndex {
		return slug.TrimIndex(p.Slug)
	}
	return p.Slug
}

// Hidden reports whether the post is excluded from listings. Hidden posts
// remain resolvable by direct slug.
func (p *Post) Hidden() bool {
	return p.Meta.Hide
}
