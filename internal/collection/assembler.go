// Package collection reconstructs browsable collection views from flat post
// lists: subfolder grouping, index-post resolution, manual ordering
// overrides, and render-ready item lists.
package collection

import (
	"math"
	"sort"
	"strings"

	"github.com/supernalintelligence/sitegen/internal/config"
	"github.com/supernalintelligence/sitegen/internal/content"
	"github.com/supernalintelligence/sitegen/internal/document"
	"github.com/supernalintelligence/sitegen/internal/slug"
)

// Kind discriminates the Item union.
type Kind int

const (
	// KindFolder is a synthetic grouping entry for a subdirectory.
	KindFolder Kind = iota
	// KindPost is a direct child post of the scope.
	KindPost
)

// Folder is a synthetic grouping entity for one subdirectory within a
// collection scope. It references posts from the repository's collection;
// it never owns or copies them.
type Folder struct {
	Slug        string             `json:"slug"`     // final segment
	FullSlug    string             `json:"fullSlug"` // scope-prefixed path
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Path        string             `json:"path"`
	Meta        *document.Metadata `json:"metadata,omitempty"`
	Posts       []*content.Post    `json:"posts"`
	IndexPost   *content.Post      `json:"indexPost,omitempty"`
}

// Item is the assembler's output element: either a Folder or a Post,
// discriminated by Kind so the presentation layer can switch exhaustively.
type Item struct {
	Kind   Kind          `json:"kind"`
	Folder *Folder       `json:"folder,omitempty"`
	Post   *content.Post `json:"post,omitempty"`
}

// Assemble partitions the posts in scope into one-level subfolder groups
// and direct children, resolves each subfolder's index post, applies the
// optional .pages ordering override, and returns folders first, then direct
// posts. The override reorders within each of the two groups; it never
// interleaves them.
func Assemble(posts []*content.Post, scope string, override *config.PagesConfig) []Item {
	scope = strings.TrimSuffix(scope, "/")
	prefix := ""
	if scope != "" {
		prefix = scope + "/"
	}

	var direct []*content.Post
	groups := make(map[string][]*content.Post)
	var groupOrder []string

	addToGroup := func(key string, p *content.Post) {
		if _, ok := groups[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		for _, existing := range groups[key] {
			if existing.Slug == p.Slug {
				return
			}
		}
		groups[key] = append(groups[key], p)
	}

	for _, p := range posts {
		if p.Hidden() {
			continue
		}
		// The scope's own index is the caller's header, not a grid item.
		if p.Slug == scope || p.Slug == prefix+"index" {
			continue
		}
		if p.IsIndex {
			continue // index posts are handled by the subfolder scan below
		}
		if scope != "" && !strings.HasPrefix(p.Slug, prefix) {
			continue
		}

		rel := strings.TrimPrefix(p.Slug, prefix)
		segments := strings.Split(rel, "/")
		if len(segments) > 1 && !slug.LooksLikeFile(segments[0]) {
			key := prefix + segments[0]
			addToGroup(key, p)
			// One level of recursive inclusion: a nested index post's own
			// children are flattened into the same group.
			for _, child := range p.ChildPosts {
				if !child.IsIndex && !child.Hidden() {
					addToGroup(key, child)
				}
			}
			continue
		}
		direct = append(direct, p)
	}

	// Subfolder index posts: slugs exactly one directory level beneath the
	// scope. Directories holding only an index file still become folders.
	indexBySub := make(map[string]*content.Post)
	for _, p := range posts {
		if !p.IsIndex || p.Hidden() {
			continue
		}
		dir := slug.TrimIndex(p.Slug)
		if dir == scope || dir == "" {
			continue
		}
		if slug.Parent(dir) != scope {
			continue
		}
		indexBySub[dir] = p
		if _, ok := groups[dir]; !ok {
			groups[dir] = nil
			groupOrder = append(groupOrder, dir)
		}
	}

	folders := make([]*Folder, 0, len(groupOrder))
	for _, full := range groupOrder {
		folders = append(folders, buildFolder(full, groups[full], indexBySub[full]))
	}

	positions := override.OrderPositions()
	sortFolders(folders, positions)
	sortPosts(direct, positions)

	items := make([]Item, 0, len(folders)+len(direct))
	for _, f := range folders {
		items = append(items, Item{Kind: KindFolder, Folder: f})
	}
	for _, p := range direct {
		items = append(items, Item{Kind: KindPost, Post: p})
	}
	return items
}

func buildFolder(fullSlug string, posts []*content.Post, index *content.Post) *Folder {
	f := &Folder{
		Slug:      slug.Base(fullSlug),
		FullSlug:  fullSlug,
		Posts:     posts,
		IndexPost: index,
		Path:      "/" + fullSlug,
	}
	if index != nil {
		f.Title = index.Title()
		f.Description = index.Meta.Description
		f.Meta = &index.Meta
		if index.Meta.Path != "" {
			f.Path = index.Meta.Path
		}
	} else {
		f.Title = slug.Humanize(f.Slug)
	}
	if f.Posts == nil {
		f.Posts = []*content.Post{}
	}
	return f
}

// overridePosition returns the stable-sort key for a name under the
// override: its listed position, or "last" when absent.
func overridePosition(positions map[string]int, name string) int {
	if positions == nil {
		return math.MaxInt
	}
	if pos, ok := positions[name]; ok {
		return pos
	}
	return math.MaxInt
}

func sortFolders(folders []*Folder, positions map[string]int) {
	if positions == nil {
		return
	}
	sort.SliceStable(folders, func(i, j int) bool {
		return overridePosition(positions, folders[i].Slug) <
			overridePosition(positions, folders[j].Slug)
	})
}

func sortPosts(posts []*content.Post, positions map[string]int) {
	if positions == nil {
		return
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return overridePosition(positions, slug.Base(posts[i].Slug)) <
			overridePosition(positions, slug.Base(posts[j].Slug))
	})
}
