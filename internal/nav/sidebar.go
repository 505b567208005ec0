package nav

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/supernalintelligence/sitegen/internal/config"
	"github.com/supernalintelligence/sitegen/internal/document"
	"github.com/supernalintelligence/sitegen/internal/slug"
)

// SidebarItem is one node of the navigation tree mirroring the directory
// structure beneath a section.
type SidebarItem struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Path     string        `json:"path,omitempty"`
	Icon     string        `json:"icon,omitempty"`
	Children []SidebarItem `json:"children,omitempty"`
}

// BuildSidebar walks the section directory under the content root and
// builds its navigation tree. Unlike the collection assembler it recurses
// to any depth. Subtree read errors are logged and the branch skipped; the
// sidebar always comes back at least partially built.
func BuildSidebar(contentRoot, sectionID string) ([]SidebarItem, error) {
	dir := filepath.Join(contentRoot, filepath.FromSlash(sectionID))
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("section %s: %w", sectionID, err)
	}
	return buildLevel(dir, sectionID), nil
}

func buildLevel(dir, slugPrefix string) []SidebarItem {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  [WARN] sidebar: skipping %s: %v\n", dir, err)
		return nil
	}

	var items []SidebarItem
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if entry.IsDir() {
			childPrefix := slugPrefix + "/" + name
			item := SidebarItem{
				ID:    childPrefix,
				Title: slug.Humanize(name),
				Path:  "/" + childPrefix,
			}
			if meta := readIndexMeta(filepath.Join(dir, name)); meta != nil {
				if meta.Title != "" {
					item.Title = meta.Title
				}
				item.Icon = meta.Icon
				if meta.Path != "" {
					item.Path = meta.Path
				}
			}
			item.Children = buildLevel(filepath.Join(dir, name), childPrefix)
			items = append(items, item)
			continue
		}

		if !slug.LooksLikeFile(name) {
			continue
		}
		s := slug.Generate(slugPrefix + "/" + name)
		if slug.IsIndex(s) {
			continue // the directory node already represents its index
		}
		item := SidebarItem{
			ID:    s,
			Title: slug.Humanize(slug.Base(s)),
			Path:  "/" + s,
		}
		if meta := readFileMeta(filepath.Join(dir, name)); meta != nil {
			if meta.Hide {
				continue
			}
			if meta.Title != "" {
				item.Title = meta.Title
			}
			item.Icon = meta.Icon
			if meta.Path != "" {
				item.Path = meta.Path
			}
		}
		items = append(items, item)
	}

	orderItems(dir, items)
	return items
}

// readIndexMeta parses the index document of a directory, if any.
func readIndexMeta(dir string) *document.Metadata {
	for _, name := range []string{"index.md", "index.mdx", "index.markdown"} {
		meta := readFileMeta(filepath.Join(dir, name))
		if meta != nil {
			return meta
		}
	}
	return nil
}

func readFileMeta(path string) *document.Metadata {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	doc, err := document.Parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  [WARN] sidebar: %s: %v\n", path, err)
		return nil
	}
	return &doc.Meta
}

// orderItems applies the directory's .pages nav override, stable so items
// absent from the override keep their natural order.
func orderItems(dir string, items []SidebarItem) {
	pages, err := config.LoadPages(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  [WARN] sidebar: %v\n", err)
	}
	positions := pages.NavPositions()
	if positions == nil {
		return
	}
	pos := func(item SidebarItem) int {
		if p, ok := positions[slug.Base(item.ID)]; ok {
			return p
		}
		return math.MaxInt
	}
	sort.SliceStable(items, func(i, j int) bool { return pos(items[i]) < pos(items[j]) })
}
