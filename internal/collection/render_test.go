package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/supernalintelligence/sitegen/internal/config"
	"github.com/supernalintelligence/sitegen/internal/content"
)

func writeFixture(t *testing.T, files map[string]string) *Preparer {
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
	site := &config.SiteConfig{Sections: []config.Section{{ID: "docs", Name: "Documentation"}}}
	return &Preparer{Repo: content.NewRepository(root), Site: site}
}

func fixturePreparer(t *testing.T) *Preparer {
	return writeFixture(t, map[string]string{
		"docs/index.md":        "---\ntitle: Docs Home\n---\n\nWelcome.\n",
		"docs/a.md":            "---\ntitle: Alpha\n---\n\nAlpha body.\n",
		"docs/b/index.md":      "---\ntitle: Bravo\n---\n\nBravo index.\n",
		"docs/b/c.md":          "---\ntitle: Charlie\n---\n\nCharlie body.\n",
		"docs/b/deep/index.md": "---\ntitle: Deep\n---\n\nDeep index.\n",
		"docs/b/deep/leaf.md":  "---\ntitle: Leaf\n---\n\nLeaf body.\n",
	})
}

func TestPrepareSectionScope(t *testing.T) {
	pr := fixturePreparer(t)
	data, err := pr.Prepare("docs", "")
	if err != nil {
		t.Fatal(err)
	}
	if data.IndexPost == nil || data.IndexPost.Slug != "docs/index" {
		t.Fatalf("section index = %+v", data.IndexPost)
	}
	if !data.IsCollection {
		t.Error("section scope should be a collection")
	}
	// One folder (b) and one direct post (a); the section's own index is
	// the header, not an item.
	if len(data.Items) != 2 {
		t.Fatalf("items = %+v", data.Items)
	}
	if data.Items[0].Kind != KindFolder || data.Items[0].Folder.Slug != "b" {
		t.Errorf("first item = %+v", data.Items[0])
	}
	if len(data.Breadcrumbs) != 1 || data.Breadcrumbs[0].Name != "Documentation" {
		t.Errorf("breadcrumbs = %+v", data.Breadcrumbs)
	}
}

func TestPrepareNestedCollection(t *testing.T) {
	pr := fixturePreparer(t)
	data, err := pr.Prepare("docs", "b")
	if err != nil {
		t.Fatal(err)
	}
	if data.IndexPost == nil || data.IndexPost.Slug != "docs/b/index" {
		t.Fatalf("fuzzy index resolution failed: %+v", data.IndexPost)
	}
	if !data.IsCollection {
		t.Error("index post should produce a collection")
	}
	// Depth-unbounded gather, then one-level regrouping relative to
	// docs/b: folder "deep" plus direct child "c".
	if len(data.Items) != 2 {
		t.Fatalf("items = %+v", data.Items)
	}
	if data.Items[0].Kind != KindFolder || data.Items[0].Folder.Slug != "deep" {
		t.Errorf("first item = %+v", data.Items[0])
	}
	if data.Items[1].Post.Slug != "docs/b/c" {
		t.Errorf("direct child = %+v", data.Items[1])
	}
	deep := data.Items[0].Folder
	if len(deep.Posts) != 1 || deep.Posts[0].Slug != "docs/b/deep/leaf" {
		t.Errorf("deep folder posts = %+v", deep.Posts)
	}
}

func TestPrepareArticle(t *testing.T) {
	pr := fixturePreparer(t)
	data, err := pr.Prepare("docs", "b/c")
	if err != nil {
		t.Fatal(err)
	}
	if data.IndexPost == nil || data.IndexPost.Slug != "docs/b/c" {
		t.Fatalf("resolved = %+v", data.IndexPost)
	}
	if data.IsCollection || len(data.Items) != 0 {
		t.Errorf("article should not assemble items: %+v", data)
	}

	want := []struct{ name, href string }{
		{"Documentation", "/docs"},
		{"B", "/docs/b"},
		{"Charlie", "/docs/b/c"},
	}
	if len(data.Breadcrumbs) != len(want) {
		t.Fatalf("breadcrumbs = %+v", data.Breadcrumbs)
	}
	for i, w := range want {
		if data.Breadcrumbs[i].Name != w.name || data.Breadcrumbs[i].Href != w.href {
			t.Errorf("crumb %d = %+v, want %+v", i, data.Breadcrumbs[i], w)
		}
	}
}

func TestPrepareNotFound(t *testing.T) {
	pr := fixturePreparer(t)
	data, err := pr.Prepare("docs", "missing/page")
	if err != nil {
		t.Fatalf("not-found must not error: %v", err)
	}
	if data.IndexPost != nil {
		t.Error("IndexPost should be nil for unknown slug")
	}
	if data.Items == nil || len(data.Items) != 0 {
		t.Errorf("items = %+v, want empty", data.Items)
	}
	if data.Breadcrumbs == nil || len(data.Breadcrumbs) != 0 {
		t.Errorf("breadcrumbs = %+v, want empty", data.Breadcrumbs)
	}
}

func TestPrepareWithPagesOverride(t *testing.T) {
	pr := writeFixture(t, map[string]string{
		"docs/a.md":   "---\ntitle: A\n---\n\nA.\n",
		"docs/d.md":   "---\ntitle: D\n---\n\nD.\n",
		"docs/.pages": "order:\n  - d\n  - a\n",
	})
	data, err := pr.Prepare("docs", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Items) != 2 {
		t.Fatalf("items = %+v", data.Items)
	}
	if data.Items[0].Post.Slug != "docs/d" || data.Items[1].Post.Slug != "docs/a" {
		t.Errorf("override not applied: %+v", data.Items)
	}
}
