// Package nav builds navigation structures: breadcrumb trails and the
// filesystem-driven sidebar tree.
package nav

import (
	"strings"

	"github.com/supernalintelligence/sitegen/internal/content"
	"github.com/supernalintelligence/sitegen/internal/slug"
)

// Crumb is one breadcrumb entry.
type Crumb struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// Breadcrumbs builds the trail for a resolved post: the section first, then
// one crumb per slug segment except the last, then the post itself. The
// final crumb uses the post's declared path when present.
func Breadcrumbs(sectionID, sectionName string, post *content.Post) []Crumb {
	if sectionName == "" {
		sectionName = slug.Humanize(sectionID)
	}
	crumbs := []Crumb{{Name: sectionName, Href: "/" + sectionID}}
	if post == nil {
		return crumbs
	}

	trail := slug.TrimIndex(post.Slug)
	segments := strings.Split(trail, "/")
	if len(segments) > 0 && segments[0] == sectionID {
		segments = segments[1:]
	}

	href := "/" + sectionID
	for i, seg := range segments {
		href += "/" + seg
		if i == len(segments)-1 {
			final := Crumb{Name: post.Title(), Href: href}
			if post.Meta.Path != "" {
				final.Href = post.Meta.Path
			}
			crumbs = append(crumbs, final)
			continue
		}
		crumbs = append(crumbs, Crumb{Name: slug.Humanize(seg), Href: href})
	}
	return crumbs
}
