// Package query applies search matching, tag filtering, sorting, and
// pagination to a post collection.
package query

import (
	"sort"
	"strings"

	"github.com/supernalintelligence/sitegen/internal/content"
	"github.com/supernalintelligence/sitegen/internal/tags"
)

// Scoring weights. Additive: a post accumulates every bonus it earns.
const (
	titleWeight       = 10
	descriptionWeight = 5
	tagWeight         = 5
	contentWeight     = 1

	fullQueryTitleBonus       = 15
	fullQueryDescriptionBonus = 10
	fullQueryContentBonus     = 5
)

// Params selects and pages a post collection. Page is 1-indexed.
type Params struct {
	Page        int
	Limit       int
	SearchQuery string
	Tags        []string
}

// Pagination describes the slice a Result holds.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPosts int  `json:"totalPosts"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// Result is a filtered, paged view over a post collection.
type Result struct {
	Posts      []*content.Post `json:"posts"`
	Pagination Pagination      `json:"pagination"`
}

// FilterAndPaginate applies tag filtering (AND semantics), search matching
// and scoring, then page slicing. When no search query is given the input
// order is preserved; default ordering for unfiltered listings is the
// caller's responsibility. Out-of-range pages yield an empty slice, never
// an error.
func FilterAndPaginate(posts []*content.Post, p Params) Result {
	filtered := posts
	if len(p.Tags) > 0 {
		filtered = filterByTags(filtered, p.Tags)
	}

	query := strings.TrimSpace(p.SearchQuery)
	if query != "" {
		filtered = searchAndRank(filtered, query)
	}

	total := len(filtered)
	limit := p.Limit
	if limit <= 0 {
		limit = total
		if limit == 0 {
			limit = 1
		}
	}
	totalPages := (total + limit - 1) / limit
	page := p.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * limit
	var pagePosts []*content.Post
	if start < total {
		end := start + limit
		if end > total {
			end = total
		}
		pagePosts = filtered[start:end]
	} else {
		pagePosts = []*content.Post{}
	}

	return Result{
		Posts: pagePosts,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			TotalPosts: total,
			TotalPages: totalPages,
			HasMore:    page < totalPages,
		},
	}
}

// filterByTags keeps posts matching every requested tag slug, checked
// against both tags and categories after normalization + slugification.
func filterByTags(posts []*content.Post, requested []string) []*content.Post {
	want := make([]string, 0, len(requested))
	for _, r := range requested {
		if s := tags.Slugify(r); s != "" {
			want = append(want, s)
		}
	}
	if len(want) == 0 {
		return posts
	}

	var out []*content.Post
	for _, p := range posts {
		have := make(map[string]bool)
		for _, t := range append(append([]string{}, p.Meta.Tags...), p.Meta.Categories...) {
			have[tags.Slugify(tags.Normalize(t))] = true
		}
		all := true
		for _, w := range want {
			if !have[w] {
				all = false
				break
			}
		}
		if all {
			out = append(out, p)
		}
	}
	return out
}

// searchAndRank keeps posts where every query term appears in at least one
// searchable field, then sorts by score descending (stable, so equal scores
// keep their input order).
func searchAndRank(posts []*content.Post, query string) []*content.Post {
	full := strings.ToLower(query)
	terms := strings.Fields(full)

	type scored struct {
		post  *content.Post
		score int
	}
	var matched []scored
	for _, p := range posts {
		f := fieldsOf(p)
		if !f.matchesAll(terms) {
			continue
		}
		matched = append(matched, scored{post: p, score: Score(p, terms, full)})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	out := make([]*content.Post, len(matched))
	for i, m := range matched {
		out[i] = m.post
	}
	return out
}

// searchFields is the lowercased searchable surface of one post.
type searchFields struct {
	title       string
	description string
	contentText string
	excerpt     string
	tagList     []string
	slugText    string
}

func fieldsOf(p *content.Post) searchFields {
	var tagList []string
	for _, t := range append(append([]string{}, p.Meta.Tags...), p.Meta.Categories...) {
		tagList = append(tagList, strings.ToLower(t))
	}
	return searchFields{
		title:       strings.ToLower(p.Title()),
		description: strings.ToLower(p.Meta.Description),
		contentText: strings.ToLower(p.Content),
		excerpt:     strings.ToLower(p.Excerpt),
		tagList:     tagList,
		slugText:    strings.ReplaceAll(strings.ToLower(p.Slug), "-", " "),
	}
}

// matchesAll requires every term to appear in at least one field.
func (f searchFields) matchesAll(terms []string) bool {
	for _, term := range terms {
		if !f.matchesTerm(term) {
			return false
		}
	}
	return true
}

func (f searchFields) matchesTerm(term string) bool {
	if strings.Contains(f.title, term) ||
		strings.Contains(f.description, term) ||
		strings.Contains(f.contentText, term) ||
		strings.Contains(f.excerpt, term) ||
		strings.Contains(f.slugText, term) {
		return true
	}
	for _, t := range f.tagList {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}

// Score computes the search score for a post against lowercased terms and
// the full lowercased query. Weights are fixed; see the constants above.
func Score(p *content.Post, terms []string, full string) int {
	f := fieldsOf(p)
	score := 0

	if anyTerm(f.title, terms) {
		score += titleWeight
	}
	if f.description != "" && anyTerm(f.description, terms) {
		score += descriptionWeight
	}
	for _, tag := range f.tagList {
		if anyTerm(tag, terms) {
			score += tagWeight
		}
	}
	if anyTerm(f.contentText, terms) {
		score += contentWeight
	}

	if strings.Contains(f.title, full) {
		score += fullQueryTitleBonus
	}
	if f.description != "" && strings.Contains(f.description, full) {
		score += fullQueryDescriptionBonus
	}
	if strings.Contains(f.contentText, full) {
		score += fullQueryContentBonus
	}
	return score
}

func anyTerm(field string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(field, term) {
			return true
		}
	}
	return false
}

// SortByDate orders posts date-descending (or ascending), newest first by
// default. Posts without a parseable date sort last. Used by callers for
// unfiltered listings.
func SortByDate(posts []*content.Post, ascending bool) []*content.Post {
	out := append([]*content.Post(nil), posts...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Meta.Time(), out[j].Meta.Time()
		if ascending {
			if ti.IsZero() {
				return false
			}
			if tj.IsZero() {
				return true
			}
			return ti.Before(tj)
		}
		return ti.After(tj)
	})
	return out
}

// VisibleOnly drops hidden posts and index posts from a listing.
func VisibleOnly(posts []*content.Post) []*content.Post {
	var out []*content.Post
	for _, p := range posts {
		if p.Hidden() || p.IsIndex {
			continue
		}
		out = append(out, p)
	}
	return out
}
