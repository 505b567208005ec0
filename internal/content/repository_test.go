package content

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// writeTree lays out a content fixture: map of relative path → file body.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func doc(title string, extra string) string {
	return "---\ntitle: " + title + "\n" + extra + "---\n\nBody of " + title + ".\n"
}

func fixtureRepo(t *testing.T) *Repository {
	t.Helper()
	root := writeTree(t, map[string]string{
		"docs/index.md":          doc("Docs Home", ""),
		"docs/a.md":              doc("Alpha", "tags:\n  - go\n"),
		"docs/b/index.md":        doc("Bravo Collection", ""),
		"docs/b/c.md":            doc("Charlie", ""),
		"docs/b/deep/d.md":       doc("Delta", ""),
		"docs/hidden.md":         doc("Hidden", "hide: true\n"),
		"blog/2024-launch.md":    doc("Launch", "date: 2024-05-01\n"),
		"docs/broken.md":         "---\ntitle: [unclosed\n---\nbad\n",
		"docs/notes.txt":         "not content",
		"node_modules/skip/x.md": doc("Skipped", ""),
	})
	return NewRepository(root)
}

func TestScanAndLookup(t *testing.T) {
	repo := fixtureRepo(t)

	posts, err := repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	// broken.md is skipped, notes.txt and node_modules ignored.
	if len(posts) != 7 {
		for _, p := range posts {
			t.Logf("post: %s", p.Slug)
		}
		t.Fatalf("got %d posts, want 7", len(posts))
	}

	// Deterministic slug ordering.
	for i := 1; i < len(posts); i++ {
		if posts[i-1].Slug >= posts[i].Slug {
			t.Fatalf("posts not sorted by slug: %q before %q", posts[i-1].Slug, posts[i].Slug)
		}
	}

	p, err := repo.GetBySlug("docs/a")
	if err != nil || p == nil {
		t.Fatalf("GetBySlug docs/a: %v %v", p, err)
	}
	if p.Meta.Title != "Alpha" || p.IsIndex {
		t.Errorf("docs/a wrong: %+v", p)
	}

	idx, _ := repo.GetBySlug("docs/b/index")
	if idx == nil || !idx.IsIndex {
		t.Fatal("docs/b/index not an index post")
	}
	if len(idx.ChildSlugs) != 2 {
		t.Errorf("docs/b children = %v, want c and deep/d", idx.ChildSlugs)
	}
}

func TestResolveFuzzy(t *testing.T) {
	repo := fixtureRepo(t)

	// Exact miss, fuzzy hit: directory path resolves to its index post.
	p, err := repo.Resolve("docs/b")
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.Slug != "docs/b/index" {
		t.Fatalf("Resolve(docs/b) = %+v", p)
	}

	// Case-insensitive resolution.
	p, _ = repo.Resolve("Docs/A")
	if p == nil || p.Slug != "docs/a" {
		t.Fatalf("Resolve(Docs/A) = %+v", p)
	}

	// Missing slug resolves to nil without error.
	p, err = repo.Resolve("docs/nope")
	if err != nil || p != nil {
		t.Fatalf("Resolve(docs/nope) = %+v, %v", p, err)
	}
}

func TestSectionListing(t *testing.T) {
	repo := fixtureRepo(t)
	docs, err := repo.Section("docs")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 6 {
		t.Fatalf("docs section has %d posts, want 6", len(docs))
	}
	blog, _ := repo.Section("blog")
	if len(blog) != 1 || blog[0].Slug != "blog/2024-launch" {
		t.Fatalf("blog section wrong: %+v", blog)
	}
}

func TestDescendantsRecursive(t *testing.T) {
	repo := fixtureRepo(t)
	idx, _ := repo.GetBySlug("docs/b/index")
	desc, err := repo.Descendants(idx)
	if err != nil {
		t.Fatal(err)
	}
	slugs := map[string]bool{}
	for _, p := range desc {
		slugs[p.Slug] = true
	}
	if !slugs["docs/b/c"] || !slugs["docs/b/deep/d"] {
		t.Fatalf("descendants missing nested posts: %v", slugs)
	}
}

func TestHiddenStillResolvable(t *testing.T) {
	repo := fixtureRepo(t)
	p, _ := repo.GetBySlug("docs/hidden")
	if p == nil || !p.Hidden() {
		t.Fatal("hidden post should resolve by direct slug")
	}
}

func TestScanCoalescing(t *testing.T) {
	repo := fixtureRepo(t)

	const callers = 16
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.All(); err != nil {
				t.Errorf("All: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := repo.scans.Load(); got != 1 {
		t.Fatalf("cold cache triggered %d scans, want 1", got)
	}

	// Warm repeats don't rescan.
	for i := 0; i < 5; i++ {
		repo.All()
	}
	if got := repo.scans.Load(); got != 1 {
		t.Fatalf("warm cache rescanned: %d scans", got)
	}

	// Invalidation forces exactly one more.
	repo.Invalidate()
	repo.All()
	if got := repo.scans.Load(); got != 2 {
		t.Fatalf("after invalidate: %d scans, want 2", got)
	}
}

func TestTTLExpiry(t *testing.T) {
	root := writeTree(t, map[string]string{"docs/a.md": doc("A", "")})
	repo := NewRepository(root, WithTTL(10*time.Millisecond))
	repo.All()
	time.Sleep(20 * time.Millisecond)
	repo.All()
	if got := repo.scans.Load(); got != 2 {
		t.Fatalf("expired generation not rebuilt: %d scans", got)
	}
}

func TestChatSegmentsLazy(t *testing.T) {
	root := writeTree(t, map[string]string{
		"story/tale.md": "---\ntitle: Tale\nrender_as: chat\n---\n\nIntro.\n\n<!--segment type=\"dialogue\"-->\nHello.\n",
	})
	repo := NewRepository(root)
	p, err := repo.Resolve("story/tale")
	if err != nil || p == nil {
		t.Fatalf("resolve tale: %v", err)
	}
	segs := repo.ChatSegments(p)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[1].Type != "dialogue" {
		t.Errorf("segment type = %q", segs[1].Type)
	}
}
