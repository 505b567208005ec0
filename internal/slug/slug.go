// Package slug normalizes content file paths into canonical slugs and
// provides fuzzy matching between requested URL paths and stored slugs.
package slug

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// markdownExtensions are the file extensions recognized as content documents.
var markdownExtensions = map[string]bool{
	".md":       true,
	".mdx":      true,
	".markdown": true,
}

// Generate normalizes a relative file path into a canonical slug:
// forward slashes, no surrounding slashes, markdown extension stripped,
// lowercased, and repeated trailing "index" segments collapsed to one.
// Generate is idempotent: applying it to its own output is a no-op.
func Generate(path string) string {
	s := strings.ReplaceAll(strings.TrimSpace(path), "\\", "/")
	s = strings.TrimPrefix(s, "./")
	s = strings.Trim(s, "/")

	// Collapse duplicate separators left by sloppy joins.
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}

	if ext := strings.ToLower(filepath.Ext(s)); markdownExtensions[ext] {
		s = s[:len(s)-len(ext)]
	}

	s = strings.ToLower(s)

	// "a/index/index" and "a/index" address the same directory head.
	for strings.HasSuffix(s, "/index/index") {
		s = strings.TrimSuffix(s, "/index")
	}
	return s
}

// TrimIndex removes a single trailing "index" segment, turning an index
// slug into its directory-equivalent form. A bare "index" becomes "".
func TrimIndex(s string) string {
	if s == "index" {
		return ""
	}
	return strings.TrimSuffix(s, "/index")
}

// IsIndex reports whether the slug addresses a directory index document.
func IsIndex(s string) bool {
	return s == "index" || strings.HasSuffix(s, "/index")
}

// Match reports fuzzy equality between two slugs: exact match, equality
// after removing a trailing "index" segment from either side, or
// case-insensitive equality after that trim. Match is symmetric.
func Match(a, b string) bool {
	if a == b {
		return true
	}
	ta, tb := TrimIndex(a), TrimIndex(b)
	if ta == tb {
		return true
	}
	return strings.EqualFold(ta, tb)
}

// LooksLikeFile reports whether a single path segment still carries a
// markdown extension, i.e. it names a file rather than a directory.
func LooksLikeFile(segment string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(segment))]
}

// Section returns the first path segment of a slug, or "" for an empty slug.
func Section(s string) string {
	if s == "" {
		return ""
	}
	if i := strings.Index(s, "/"); i >= 0 {
		return s[:i]
	}
	return s
}

// Parent returns the slug one directory level above s, or "" when s has
// no parent.
func Parent(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[:i]
	}
	return ""
}

// Base returns the final segment of a slug.
func Base(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

var titleCaser = cases.Title(language.English)

// Humanize turns a slug segment into a display label: hyphens and
// underscores become spaces, words are title-cased.
func Humanize(segment string) string {
	label := strings.ReplaceAll(segment, "-", " ")
	label = strings.ReplaceAll(label, "_", " ")
	return titleCaser.String(label)
}
