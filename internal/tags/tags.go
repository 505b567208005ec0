// Package tags derives a deduplicated, frequency-filtered tag vocabulary
// from a post collection.
package tags

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/supernalintelligence/sitegen/internal/content"
)

// Info is one entry of the derived tag vocabulary.
type Info struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Options tunes vocabulary derivation.
type Options struct {
	// PreserveCase keeps authored casing instead of the default
	// title-case normalization. The default folds "AI" and "ai" into
	// "Ai"; existing tag URLs depend on that, so it stays the default.
	PreserveCase bool
}

// Normalize trims a tag value and title-cases it: first rune upper, rest
// lower. Lossy ("AI" becomes "Ai"), but this is the addressing scheme the
// rest of the pipeline keys on.
func Normalize(name string) string {
	t := strings.TrimSpace(name)
	if t == "" {
		return ""
	}
	runes := []rune(strings.ToLower(t))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonWordChars   = regexp.MustCompile(`[^a-z0-9_-]`)
	hyphenRuns     = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a tag name into its URL form: lowercase, whitespace runs to
// single hyphens, non-word characters stripped, hyphens collapsed and
// trimmed.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = nonWordChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Collect builds the tag vocabulary for a post collection with default
// options: tags and categories merged, counts accumulated per normalized
// name, entries below minFrequency dropped, result sorted by count
// descending then name ascending.
func Collect(posts []*content.Post, minFrequency int) []Info {
	return CollectWithOptions(posts, minFrequency, Options{})
}

// CollectWithOptions is Collect with explicit Options.
func CollectWithOptions(posts []*content.Post, minFrequency int, opts Options) []Info {
	counts := make(map[string]int)
	for _, p := range posts {
		if p.Hidden() {
			continue
		}
		for _, raw := range append(append([]string{}, p.Meta.Tags...), p.Meta.Categories...) {
			var name string
			if opts.PreserveCase {
				name = strings.TrimSpace(raw)
			} else {
				name = Normalize(raw)
			}
			if name == "" {
				continue
			}
			counts[name]++
		}
	}

	infos := make([]Info, 0, len(counts))
	for name, count := range counts {
		if count < minFrequency {
			continue
		}
		infos = append(infos, Info{Name: name, Slug: Slugify(name), Count: count})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Count != infos[j].Count {
			return infos[i].Count > infos[j].Count
		}
		return infos[i].Name < infos[j].Name
	})

	// Distinct names can slugify identically; the higher-count entry wins.
	seen := make(map[string]bool, len(infos))
	deduped := infos[:0]
	for _, info := range infos {
		if info.Slug == "" || seen[info.Slug] {
			continue
		}
		seen[info.Slug] = true
		deduped = append(deduped, info)
	}
	return deduped
}
