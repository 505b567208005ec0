package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/supernalintelligence/sitegen/internal/query"
)

func TestRunSearch_TitleMatch(t *testing.T) {
	setupCommandTestContent(t, defaultCommandTestFiles())

	var runErr error
	out := captureCommandStdout(t, func() {
		runErr = runSearch("alpha", 10, 1, nil, "", false)
	})
	if runErr != nil {
		t.Fatalf("runSearch: %v", runErr)
	}
	if !strings.Contains(out, "Alpha Guide") {
		t.Fatalf("expected title in output, got: %s", out)
	}
}

func TestRunSearch_NoResults(t *testing.T) {
	setupCommandTestContent(t, defaultCommandTestFiles())

	var runErr error
	out := captureCommandStdout(t, func() {
		runErr = runSearch("zzz-not-present", 10, 1, nil, "", false)
	})
	if runErr != nil {
		t.Fatalf("runSearch: %v", runErr)
	}
	if !strings.Contains(out, "No results found.") {
		t.Fatalf("expected empty-result message, got: %s", out)
	}
}

func TestRunSearch_HiddenPostsExcluded(t *testing.T) {
	setupCommandTestContent(t, defaultCommandTestFiles())

	var runErr error
	out := captureCommandStdout(t, func() {
		runErr = runSearch("draft", 10, 1, nil, "", false)
	})
	if runErr != nil {
		t.Fatalf("runSearch: %v", runErr)
	}
	if strings.Contains(out, "blog/draft") {
		t.Fatalf("hidden post leaked into results: %s", out)
	}
}

func TestRunSearch_TagFilterJSON(t *testing.T) {
	setupCommandTestContent(t, defaultCommandTestFiles())

	var runErr error
	out := captureCommandStdout(t, func() {
		runErr = runSearch("", 10, 1, []string{"go", "tooling"}, "", true)
	})
	if runErr != nil {
		t.Fatalf("runSearch: %v", runErr)
	}

	var result query.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("expected valid JSON, got: %v (%q)", err, out)
	}
	if result.Pagination.TotalPosts != 1 {
		t.Fatalf("expected one post carrying both tags, got %d", result.Pagination.TotalPosts)
	}
	if result.Posts[0].Slug != "docs/alpha" {
		t.Errorf("slug = %q, want docs/alpha", result.Posts[0].Slug)
	}
}

func TestRunSearch_SectionRestriction(t *testing.T) {
	setupCommandTestContent(t, defaultCommandTestFiles())

	var runErr error
	out := captureCommandStdout(t, func() {
		runErr = runSearch("", 10, 1, []string{"go"}, "blog", true)
	})
	if runErr != nil {
		t.Fatalf("runSearch: %v", runErr)
	}

	var result query.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("expected valid JSON, got: %v (%q)", err, out)
	}
	if result.Pagination.TotalPosts != 0 {
		t.Fatalf("go-tagged posts live in docs, expected none in blog, got %d", result.Pagination.TotalPosts)
	}
}
