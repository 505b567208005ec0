package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/supernalintelligence/sitegen/internal/content"
	"github.com/supernalintelligence/sitegen/internal/document"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestBuildSidebar(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/intro.md":        "---\ntitle: Introduction\n---\n\nHi.\n",
		"docs/guides/index.md": "---\ntitle: All Guides\nicon: book\n---\n\nGuides.\n",
		"docs/guides/first.md": "---\ntitle: First Guide\n---\n\nOne.\n",
		"docs/guides/sub/x.md": "---\ntitle: X\n---\n\nX.\n",
		"docs/hidden.md":       "---\ntitle: Hidden\nhide: true\n---\n\nNo.\n",
	})

	items, err := BuildSidebar(root, "docs")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want guides + intro: %+v", len(items), items)
	}

	var guides *SidebarItem
	for i := range items {
		if items[i].ID == "docs/guides" {
			guides = &items[i]
		}
	}
	if guides == nil {
		t.Fatalf("guides directory missing: %+v", items)
	}
	if guides.Title != "All Guides" || guides.Icon != "book" {
		t.Errorf("directory node should carry index metadata: %+v", guides)
	}
	// Arbitrary-depth recursion: sub/x appears under guides/sub.
	if len(guides.Children) != 2 {
		t.Fatalf("guides children = %+v", guides.Children)
	}
	var sub *SidebarItem
	for i := range guides.Children {
		if guides.Children[i].ID == "docs/guides/sub" {
			sub = &guides.Children[i]
		}
	}
	if sub == nil || len(sub.Children) != 1 || sub.Children[0].ID != "docs/guides/sub/x" {
		t.Errorf("deep recursion failed: %+v", guides.Children)
	}
}

func TestBuildSidebarNavOverride(t *testing.T) {
	root := writeTree(t, map[string]string{
		"docs/a.md":   "---\ntitle: A\n---\n\nA.\n",
		"docs/b.md":   "---\ntitle: B\n---\n\nB.\n",
		"docs/.pages": "nav:\n  - b\n  - a\n",
	})
	items, err := BuildSidebar(root, "docs")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != "docs/b" || items[1].ID != "docs/a" {
		t.Errorf("nav override not applied: %+v", items)
	}
}

func TestBuildSidebarMissingSection(t *testing.T) {
	if _, err := BuildSidebar(t.TempDir(), "nope"); err == nil {
		t.Fatal("missing section should error")
	}
}

func TestBreadcrumbs(t *testing.T) {
	post := &content.Post{
		Slug: "docs/guides/getting-started",
		Meta: document.Metadata{Title: "Getting Started"},
	}
	crumbs := Breadcrumbs("docs", "Documentation", post)
	want := []Crumb{
		{Name: "Documentation", Href: "/docs"},
		{Name: "Guides", Href: "/docs/guides"},
		{Name: "Getting Started", Href: "/docs/guides/getting-started"},
	}
	if len(crumbs) != len(want) {
		t.Fatalf("crumbs = %+v", crumbs)
	}
	for i := range want {
		if crumbs[i] != want[i] {
			t.Errorf("crumb %d = %+v, want %+v", i, crumbs[i], want[i])
		}
	}
}

func TestBreadcrumbsDeclaredPath(t *testing.T) {
	post := &content.Post{
		Slug: "docs/custom",
		Meta: document.Metadata{Title: "Custom", Path: "/elsewhere/custom"},
	}
	crumbs := Breadcrumbs("docs", "", post)
	last := crumbs[len(crumbs)-1]
	if last.Href != "/elsewhere/custom" {
		t.Errorf("declared path ignored: %+v", last)
	}
	if crumbs[0].Name != "Docs" {
		t.Errorf("section fallback label = %q", crumbs[0].Name)
	}
}

func TestBreadcrumbsIndexPost(t *testing.T) {
	post := &content.Post{
		Slug:    "docs/guides/index",
		IsIndex: true,
		Meta:    document.Metadata{Title: "All Guides"},
	}
	crumbs := Breadcrumbs("docs", "Documentation", post)
	want := []Crumb{
		{Name: "Documentation", Href: "/docs"},
		{Name: "All Guides", Href: "/docs/guides"},
	}
	if len(crumbs) != len(want) {
		t.Fatalf("crumbs = %+v", crumbs)
	}
	for i := range want {
		if crumbs[i] != want[i] {
			t.Errorf("crumb %d = %+v, want %+v", i, crumbs[i], want[i])
		}
	}
}
