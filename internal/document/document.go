// Package document parses raw markdown/MDX files with YAML frontmatter into
// typed documents: metadata, rendered HTML, and derived fields.
package document

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// excerptLength caps derived excerpts, in runes.
const excerptLength = 180

// wordsPerMinute drives the reading-time estimate.
const wordsPerMinute = 200

// Document is a fully parsed content file. HTML is derived deterministically
// from Content at parse time and never mutated afterwards.
type Document struct {
	Meta        Metadata
	Content     string
	HTML        string
	Excerpt     string
	ReadingTime int
}

// ParseError describes why a document could not be parsed. A ParseError is
// a per-file condition: callers scanning a tree skip the file and continue.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse document: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// md renders markdown the same way for every document so HTML output is
// byte-stable across runs. Raw HTML passthrough is enabled because MDX-style
// content embeds markup and segment directives.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// Parse turns raw file bytes into a Document. It fails only on undecodable
// input or malformed frontmatter; a missing title is tolerated and the
// resulting Document is still usable.
func Parse(raw []byte) (*Document, error) {
	if !utf8.Valid(raw) {
		return nil, &ParseError{Reason: "content is not valid UTF-8"}
	}

	var meta Metadata
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return nil, &ParseError{Reason: "malformed frontmatter", Err: err}
	}

	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, &ParseError{Reason: "markdown rendering failed", Err: err}
	}
	html := buf.String()

	excerpt := strings.TrimSpace(meta.Excerpt)
	if excerpt == "" {
		excerpt = makeExcerpt(html)
	}

	return &Document{
		Meta:        meta,
		Content:     string(body),
		HTML:        html,
		Excerpt:     excerpt,
		ReadingTime: readingTime(body),
	}, nil
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripTags removes HTML tags and collapses whitespace runs to single
// spaces. Used for excerpts and substring search over rendered content.
func StripTags(html string) string {
	text := tagPattern.ReplaceAllString(html, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// makeExcerpt derives a short summary from rendered HTML: tags stripped,
// truncated at a word boundary. Deterministic for the same input.
func makeExcerpt(html string) string {
	text := StripTags(html)
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}
	runes := []rune(text)
	cut := excerptLength
	for cut > 0 && runes[cut-1] != ' ' {
		cut--
	}
	if cut == 0 {
		cut = excerptLength
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}

// readingTime estimates minutes to read the body, never less than one.
func readingTime(body []byte) int {
	words := len(strings.Fields(string(body)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
