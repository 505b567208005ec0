package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/supernalintelligence/sitegen/internal/document"
	"github.com/supernalintelligence/sitegen/internal/slug"
)

// Repository scans a content root once per cache generation and serves the
// resulting posts from memory. A generation is immutable; invalidation
// replaces it wholesale on the next access. Concurrent cache misses are
// coalesced into a single scan.
type Repository struct {
	root     string
	ttl      time.Duration
	skipDirs map[string]bool

	mu    sync.RWMutex
	gen   *generation
	group singleflight.Group

	segments *document.SegmentCache

	// scans counts filesystem walks, for cache behavior tests.
	scans atomic.Int64
}

// generation is one immutable scan result.
type generation struct {
	posts    []*Post
	bySlug   map[string]*Post
	sections map[string][]*Post
	builtAt  time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithTTL sets the cache revalidation window. Zero or negative means the
// generation never expires on its own; only Invalidate replaces it.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) { r.ttl = ttl }
}

// WithSkipDirs sets directory names excluded from scans.
func WithSkipDirs(dirs map[string]bool) Option {
	return func(r *Repository) { r.skipDirs = dirs }
}

// NewRepository creates a repository over the given content root. No scan
// happens until the first access.
func NewRepository(root string, opts ...Option) *Repository {
	r := &Repository{
		root:     root,
		skipDirs: map[string]bool{".git": true, "node_modules": true},
		segments: document.NewSegmentCache(256),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the content root directory.
func (r *Repository) Root() string { return r.root }

// All returns every post in the current generation, ordered by slug.
func (r *Repository) All() ([]*Post, error) {
	g, err := r.generation()
	if err != nil {
		return nil, err
	}
	return g.posts, nil
}

// GetBySlug returns the post with exactly the given slug, or nil when no
// such post exists. Fuzzy resolution is Resolve's job.
func (r *Repository) GetBySlug(s string) (*Post, error) {
	g, err := r.generation()
	if err != nil {
		return nil, err
	}
	return g.bySlug[s], nil
}

// Resolve returns the post for a requested path: exact lookup first, then a
// linear scan under fuzzy slug matching. Exact misses are expected for
// index routes, so the fallback is part of the contract. Returns nil when
// nothing matches.
func (r *Repository) Resolve(requested string) (*Post, error) {
	g, err := r.generation()
	if err != nil {
		return nil, err
	}
	normalized := slug.Generate(requested)
	if p, ok := g.bySlug[normalized]; ok {
		return p, nil
	}
	for _, p := range g.posts {
		if slug.Match(p.Slug, normalized) {
			return p, nil
		}
	}
	return nil, nil
}

// Section returns all posts whose slug's first segment equals sectionID,
// ordered by slug.
func (r *Repository) Section(sectionID string) ([]*Post, error) {
	g, err := r.generation()
	if err != nil {
		return nil, err
	}
	return g.sections[sectionID], nil
}

// Sections returns every section ID present in the current generation,
// sorted.
func (r *Repository) Sections() ([]string, error) {
	g, err := r.generation()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(g.sections))
	for id := range g.sections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Descendants gathers every post nested beneath an index post, at any
// depth, by following child relations.
func (r *Repository) Descendants(p *Post) ([]*Post, error) {
	if !p.IsIndex {
		return nil, nil
	}
	seen := map[string]bool{p.Slug: true}
	var out []*Post
	var walk func(posts []*Post)
	walk = func(posts []*Post) {
		for _, child := range posts {
			if seen[child.Slug] {
				continue
			}
			seen[child.Slug] = true
			out = append(out, child)
			if child.IsIndex {
				walk(child.ChildPosts)
			}
		}
	}
	walk(p.ChildPosts)
	return out, nil
}

// ChatSegments returns the lazily computed chat-segment split for a post.
// Only meaningful when the post's render_as is "chat".
func (r *Repository) ChatSegments(p *Post) []document.ChatSegment {
	return r.segments.Get(p.Slug, p.HTML)
}

// Invalidate drops the current generation. The next access rebuilds.
func (r *Repository) Invalidate() {
	r.mu.Lock()
	r.gen = nil
	r.mu.Unlock()
	r.segments.Purge()
}

// Generation age, for status surfaces. Zero when no generation is built.
func (r *Repository) Age() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.gen == nil {
		return 0
	}
	return time.Since(r.gen.builtAt)
}

func (r *Repository) current() *generation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.gen == nil {
		return nil
	}
	if r.ttl > 0 && time.Since(r.gen.builtAt) >= r.ttl {
		return nil
	}
	return r.gen
}

// generation returns the live generation, rebuilding under singleflight on
// a cache miss so simultaneous misses trigger exactly one scan. A rebuild
// runs to completion even if the caller that started it goes away.
func (r *Repository) generation() (*generation, error) {
	if g := r.current(); g != nil {
		return g, nil
	}
	v, err, _ := r.group.Do("scan", func() (interface{}, error) {
		// A racing caller may have finished the rebuild already.
		if g := r.current(); g != nil {
			return g, nil
		}
		g, err := r.scan()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.gen = g
		r.mu.Unlock()
		r.segments.Purge()
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*generation), nil
}

// scan walks the content root, parses every document, and assembles one
// immutable generation. One bad file never aborts the scan: it is logged
// and skipped.
func (r *Repository) scan() (*generation, error) {
	r.scans.Add(1)

	var files []string
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == r.root {
				return err
			}
			fmt.Fprintf(os.Stderr, "  [WARN] skipping %s: %v\n", path, err)
			return nil
		}
		if d.IsDir() {
			if r.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if slug.LooksLikeFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content root %s: %w", r.root, err)
	}

	g := &generation{
		bySlug:   make(map[string]*Post, len(files)),
		sections: make(map[string][]*Post),
		builtAt:  time.Now(),
	}

	for _, path := range files {
		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			rel = path
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [ERROR] read %s: %v\n", rel, err)
			continue
		}
		doc, err := document.Parse(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [ERROR] %s: %v\n", rel, err)
			continue
		}

		s := slug.Generate(rel)
		if existing, ok := g.bySlug[s]; ok {
			fmt.Fprintf(os.Stderr, "  [WARN] duplicate slug %q: %s shadows %s\n",
				s, existing.FilePath, path)
			continue
		}

		post := &Post{
			Slug:        s,
			IsIndex:     slug.IsIndex(s),
			Meta:        doc.Meta,
			Content:     doc.Content,
			HTML:        doc.HTML,
			Excerpt:     doc.Excerpt,
			ReadingTime: doc.ReadingTime,
			FilePath:    path,
		}
		g.bySlug[s] = post
		g.posts = append(g.posts, post)
	}

	// Deterministic ordering regardless of walk order.
	sort.Slice(g.posts, func(i, j int) bool { return g.posts[i].Slug < g.posts[j].Slug })

	for _, p := range g.posts {
		g.sections[p.Section()] = append(g.sections[p.Section()], p)
	}
	linkChildren(g)
	return g, nil
}

// linkChildren populates each index post's ownership relation: every post
// whose slug lives under the index's directory prefix.
func linkChildren(g *generation) {
	for _, idx := range g.posts {
		if !idx.IsIndex {
			continue
		}
		prefix := slug.TrimIndex(idx.Slug)
		if prefix != "" {
			prefix += "/"
		}
		for _, p := range g.posts {
			if p == idx || !strings.HasPrefix(p.Slug, prefix) {
				continue
			}
			idx.ChildSlugs = append(idx.ChildSlugs, p.Slug)
			idx.ChildPosts = append(idx.ChildPosts, p)
		}
	}
}
