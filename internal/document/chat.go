package document

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// StoryControl carries flow directives attached to a chat segment. An
// Action of "stop" marks the segment (and everything after it) as
// non-renderable; parsing still produces those segments so authored content
// is never silently dropped from the data.
type StoryControl struct {
	Action string `json:"action"`
}

// ChatSegment is one pre-split fragment of a chat-rendered document.
type ChatSegment struct {
	HTML         string        `json:"html"`
	Type         string        `json:"type,omitempty"`
	StoryControl *StoryControl `json:"storyControl,omitempty"`
	Sound        string        `json:"sound,omitempty"`
	Style        string        `json:"style,omitempty"`
}

// Segment directives survive goldmark's raw-HTML passthrough as comments:
// <!--segment type="narration" action="stop" sound="chime" style="dim"-->
var (
	segmentDirective = regexp.MustCompile(`<!--segment([^>]*?)-->`)
	segmentAttr      = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

// SplitChatSegments splits rendered HTML at segment directive boundaries.
// Content before the first directive becomes a plain leading segment. The
// full segment list is returned, including any terminal "stop" segment and
// everything after it.
func SplitChatSegments(html string) []ChatSegment {
	locs := segmentDirective.FindAllStringSubmatchIndex(html, -1)
	if len(locs) == 0 {
		if strings.TrimSpace(html) == "" {
			return nil
		}
		return []ChatSegment{{HTML: html}}
	}

	var segments []ChatSegment
	if lead := html[:locs[0][0]]; strings.TrimSpace(lead) != "" {
		segments = append(segments, ChatSegment{HTML: lead})
	}

	for i, loc := range locs {
		end := len(html)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		seg := ChatSegment{HTML: html[loc[1]:end]}
		applyAttrs(&seg, html[loc[2]:loc[3]])
		segments = append(segments, seg)
	}
	return segments
}

func applyAttrs(seg *ChatSegment, attrs string) {
	for _, m := range segmentAttr.FindAllStringSubmatch(attrs, -1) {
		key, val := m[1], m[2]
		switch key {
		case "type":
			seg.Type = val
		case "action":
			seg.StoryControl = &StoryControl{Action: val}
		case "sound":
			seg.Sound = val
		case "style":
			seg.Style = val
		}
	}
}

// RenderableSegments returns the prefix of segments that should actually be
// rendered: everything before the first segment whose StoryControl action
// is "stop". Suppression happens here, at render time, not at parse time.
func RenderableSegments(segments []ChatSegment) []ChatSegment {
	for i, seg := range segments {
		if seg.StoryControl != nil && seg.StoryControl.Action == "stop" {
			return segments[:i]
		}
	}
	return segments
}

// SegmentCache memoizes chat-segment splits per slug so repeated renders of
// the same post within one cache generation don't re-split.
type SegmentCache struct {
	cache *lru.Cache[string, []ChatSegment]
}

// NewSegmentCache returns a bounded cache holding up to size entries.
func NewSegmentCache(size int) *SegmentCache {
	if size <= 0 {
		size = 128
	}
	c, _ := lru.New[string, []ChatSegment](size)
	return &SegmentCache{cache: c}
}

// Get returns the cached split for slug, computing and storing it on miss.
func (c *SegmentCache) Get(slug, html string) []ChatSegment {
	if segs, ok := c.cache.Get(slug); ok {
		return segs
	}
	segs := SplitChatSegments(html)
	c.cache.Add(slug, segs)
	return segs
}

// Purge drops every cached entry. Called when the content cache rolls over.
func (c *SegmentCache) Purge() {
	c.cache.Purge()
}
