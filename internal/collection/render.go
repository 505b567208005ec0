package collection

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/supernalintelligence/sitegen/internal/config"
	"github.com/supernalintelligence/sitegen/internal/content"
	"github.com/supernalintelligence/sitegen/internal/nav"
	"github.com/supernalintelligence/sitegen/internal/slug"
)

// RenderData is everything a collection or article page needs. A nil
// IndexPost means "not found"; callers respond with their 404 path, the
// preparer never errors for missing content.
type RenderData struct {
	IndexPost    *content.Post `json:"indexPost"`
	Items        []Item        `json:"items"`
	Breadcrumbs  []nav.Crumb   `json:"breadcrumbPath"`
	Section      string        `json:"section"`
	IsCollection bool          `json:"isCollection"`
}

// Preparer composes the repository, assembler, and navigation builders
// behind the two operations every caller needs.
type Preparer struct {
	Repo *content.Repository
	Site *config.SiteConfig
}

// Prepare resolves a section (and optional slug path beneath it) into
// render data. With no slug the scope is the whole section. With a slug the
// post is resolved exactly, then fuzzily; if it is an index post, its full
// descendant set is gathered before assembly.
func (pr *Preparer) Prepare(sectionID, slugPath string) (*RenderData, error) {
	if slugPath == "" {
		return pr.prepareSection(sectionID)
	}
	return pr.preparePost(sectionID, slugPath)
}

func (pr *Preparer) prepareSection(sectionID string) (*RenderData, error) {
	posts, err := pr.Repo.Section(sectionID)
	if err != nil {
		return nil, err
	}

	indexPost, err := pr.Repo.Resolve(sectionID)
	if err != nil {
		return nil, err
	}

	items := Assemble(posts, sectionID, pr.loadOverride(sectionID))
	return &RenderData{
		IndexPost:    indexPost,
		Items:        items,
		Breadcrumbs:  []nav.Crumb{{Name: pr.sectionName(sectionID), Href: "/" + sectionID}},
		Section:      sectionID,
		IsCollection: true,
	}, nil
}

func (pr *Preparer) preparePost(sectionID, slugPath string) (*RenderData, error) {
	full := slug.Generate(sectionID + "/" + slugPath)
	post, err := pr.Repo.Resolve(full)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return &RenderData{
			Items:       []Item{},
			Breadcrumbs: []nav.Crumb{},
			Section:     sectionID,
		}, nil
	}

	data := &RenderData{
		IndexPost:   post,
		Section:     sectionID,
		Breadcrumbs: nav.Breadcrumbs(sectionID, pr.sectionName(sectionID), post),
		Items:       []Item{},
	}

	if post.IsIndex {
		// Gather every descendant, unbounded depth; the assembler then
		// re-partitions that pool back into one-level groups.
		descendants, err := pr.Repo.Descendants(post)
		if err != nil {
			return nil, err
		}
		scope := slug.TrimIndex(post.Slug)
		data.Items = Assemble(descendants, scope, pr.loadOverride(scope))
		data.IsCollection = true
	}
	return data, nil
}

// loadOverride reads the scope directory's .pages file. Malformed overrides
// are logged and ignored; the page still renders in natural order.
func (pr *Preparer) loadOverride(scope string) *config.PagesConfig {
	dir := filepath.Join(pr.Repo.Root(), filepath.FromSlash(scope))
	pages, err := config.LoadPages(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  [WARN] %v\n", err)
	}
	return pages
}

func (pr *Preparer) sectionName(sectionID string) string {
	if pr.Site != nil {
		if name := pr.Site.SectionName(sectionID); name != sectionID {
			return name
		}
	}
	return slug.Humanize(sectionID)
}
