// Package web provides a local read-only JSON API over the content
// pipeline: sections, listings, tag vocabulary, collection render data, and
// sidebars.
package web

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/supernalintelligence/sitegen/internal/collection"
	"github.com/supernalintelligence/sitegen/internal/config"
	"github.com/supernalintelligence/sitegen/internal/content"
	"github.com/supernalintelligence/sitegen/internal/document"
	"github.com/supernalintelligence/sitegen/internal/nav"
	"github.com/supernalintelligence/sitegen/internal/query"
	"github.com/supernalintelligence/sitegen/internal/tags"
)

// Serve starts the API server on the given address and blocks.
func Serve(addr string, repo *content.Repository, site *config.SiteConfig, version string) error {
	s := NewServer(repo, site, version)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	fmt.Fprintf(os.Stderr, "sitegen API: http://%s\n", listener.Addr())
	return http.Serve(listener, s.Handler())
}

// Server holds the handler dependencies. Exported so tests can drive it
// through httptest without binding a socket.
type Server struct {
	repo     *content.Repository
	site     *config.SiteConfig
	preparer *collection.Preparer
	version  string
}

// NewServer builds a Server over a repository and site config.
func NewServer(repo *content.Repository, site *config.SiteConfig, version string) *Server {
	return &Server{
		repo:     repo,
		site:     site,
		preparer: &collection.Preparer{Repo: repo, Site: site},
		version:  version,
	}
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/sections", s.handleSections)
	mux.HandleFunc("/api/posts", s.handlePosts)
	mux.HandleFunc("/api/tags", s.handleTags)
	mux.HandleFunc("/api/collection/", s.handleCollection) // /api/collection/{section}[/slug...]
	mux.HandleFunc("/api/post/", s.handlePost)             // /api/post/{slug...}
	mux.HandleFunc("/api/sidebar/", s.handleSidebar)       // /api/sidebar/{section}
	return localhostOnly(securityHeaders(mux))
}

// --- Middleware ---

func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if idx := strings.LastIndex(host, ":"); idx >= 0 {
			host = host[:idx]
		}
		host = strings.Trim(host, "[]")

		if host == "localhost" {
			next.ServeHTTP(w, r)
			return
		}
		if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Forbidden", http.StatusForbidden)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

// --- Handlers ---

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	posts, err := s.repo.All()
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"post_count": len(posts),
		"sections":   len(s.site.Sections),
		"cache_age":  s.repo.Age().String(),
		"version":    s.version,
	})
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.site.Sections)
}

// handlePosts lists posts for a section (or all blog-included sections),
// filtered by tags/search and paginated. Unfiltered listings are sorted by
// the configured default (date descending).
func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	posts, err := s.listingPosts(q.Get("section"))
	if err != nil {
		httpError(w, err)
		return
	}
	posts = query.VisibleOnly(posts)

	search := q.Get("q")
	if search == "" {
		posts = query.SortByDate(posts, s.site.Blog.DefaultSortDirection == "asc")
	}

	limit := s.site.Blog.PostsPerPage
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	page := 1
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	var tagFilter []string
	if v := q.Get("tags"); v != "" {
		tagFilter = strings.Split(v, ",")
	}

	writeJSON(w, query.FilterAndPaginate(posts, query.Params{
		Page:        page,
		Limit:       limit,
		SearchQuery: search,
		Tags:        tagFilter,
	}))
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, err := s.listingPosts(q.Get("section"))
	if err != nil {
		httpError(w, err)
		return
	}

	min := s.site.Blog.MinTagFrequency
	if v := q.Get("min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			min = n
		}
	}
	infos := tags.Collect(posts, min)
	if infos == nil {
		infos = []tags.Info{}
	}
	writeJSON(w, infos)
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/collection/"), "/")
	if rest == "" {
		http.Error(w, "section required", http.StatusBadRequest)
		return
	}
	section, slugPath, _ := strings.Cut(rest, "/")

	data, err := s.preparer.Prepare(section, slugPath)
	if err != nil {
		httpError(w, err)
		return
	}
	if data.IndexPost == nil && slugPath != "" {
		w.WriteHeader(http.StatusNotFound)
	}
	writeJSON(w, data)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	requested := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/post/"), "/")
	post, err := s.repo.Resolve(requested)
	if err != nil {
		httpError(w, err)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	resp := map[string]any{
		"post": post,
		"html": post.HTML,
	}
	if post.Meta.RenderAs == "chat" {
		segments := document.RenderableSegments(s.repo.ChatSegments(post))
		if segments == nil {
			segments = []document.ChatSegment{}
		}
		resp["chatSegments"] = segments
	}
	writeJSON(w, resp)
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	section := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/sidebar/"), "/")
	items, err := nav.BuildSidebar(s.repo.Root(), section)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if items == nil {
		items = []nav.SidebarItem{}
	}
	writeJSON(w, items)
}

// listingPosts returns one section's posts, or the aggregate of every
// blog-included section when sectionID is empty.
func (s *Server) listingPosts(sectionID string) ([]*content.Post, error) {
	if sectionID != "" {
		return s.repo.Section(sectionID)
	}
	all, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	var out []*content.Post
	for _, p := range all {
		if s.site.SectionIncluded(p.Section()) {
			out = append(out, p)
		}
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "  [WARN] encode response: %v\n", err)
	}
}

func httpError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
