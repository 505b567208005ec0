package document

import (
	"strings"
	"time"
)

// Metadata holds the recognized frontmatter fields of a document. Keys the
// struct does not name are preserved in Extra so authored metadata survives
// the round trip to the presentation layer.
type Metadata struct {
	Title            string         `yaml:"title" json:"title"`
	Description      string         `yaml:"description" json:"description,omitempty"`
	Date             string         `yaml:"date" json:"date,omitempty"`
	Author           string         `yaml:"author" json:"author,omitempty"`
	Tags             []string       `yaml:"tags" json:"tags,omitempty"`
	Categories       []string       `yaml:"categories" json:"categories,omitempty"`
	CoverImage       string         `yaml:"coverImage" json:"coverImage,omitempty"`
	CoverMedia       string         `yaml:"coverMedia" json:"coverMedia,omitempty"`
	DisplayStyle     string         `yaml:"displayStyle" json:"displayStyle,omitempty"`
	DefaultViewType  string         `yaml:"defaultViewType" json:"defaultViewType,omitempty"`
	AllowedViewTypes []string       `yaml:"allowedViewTypes" json:"allowedViewTypes,omitempty"`
	Hide             bool           `yaml:"hide" json:"hide,omitempty"`
	RenderAs         string         `yaml:"render_as" json:"renderAs,omitempty"`
	Path             string         `yaml:"path" json:"path,omitempty"`
	Excerpt          string         `yaml:"excerpt" json:"excerpt,omitempty"`
	Icon             string         `yaml:"icon" json:"icon,omitempty"`
	Extra            map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// dateFormats lists the accepted frontmatter date layouts, tried in order.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
}

// Time parses the Date field. Unparseable or absent dates return the zero
// time, which sorts last in date-descending listings.
func (m *Metadata) Time() time.Time {
	d := strings.TrimSpace(m.Date)
	if d == "" {
		return time.Time{}
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, d); err == nil {
			return t
		}
	}
	return time.Time{}
}
