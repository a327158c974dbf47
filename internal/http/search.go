package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SearchResultItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Slug  string `json:"slug,omitempty"`
	Date  string `json:"date,omitempty"`
}

type SearchResponse struct {
	Items []SearchResultItem `json:"items"`
}

type VisitRequest struct {
	Path     *string `json:"path"`
	Referrer *string `json:"referrer"`
}

type VisitCountResponse struct {
	Total int `json:"total"`
}

// PublicSearch runs a case-insensitive substring match across sermons,
// blog posts, and events. Each collection contributes at most ten hits.
func (s *Server) PublicSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" || len(query) > 100 {
		WriteJSON(w, http.StatusOK, SearchResponse{Items: []SearchResultItem{}})
		return
	}
	like := "%" + strings.ToLower(query) + "%"
	items := []SearchResultItem{}

	sermons := []struct {
		ID    string    `db:"id"`
		Title string    `db:"title"`
		Date  time.Time `db:"date"`
	}{}
	if err := s.DB.Select(&sermons, `
SELECT id, title, date
FROM sermons
WHERE lower(title) LIKE $1 OR lower(preacher) LIKE $1
ORDER BY date DESC
LIMIT 10
`, like); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	for _, row := range sermons {
		items = append(items, SearchResultItem{ID: row.ID, Title: row.Title, Type: "sermon", Date: row.Date.Format("2006-01-02")})
	}

	posts := []struct {
		ID    string `db:"id"`
		Title string `db:"title"`
		Slug  string `db:"slug"`
	}{}
	if err := s.DB.Select(&posts, `
SELECT id, title, slug
FROM blog_posts
WHERE lower(title) LIKE $1 OR lower(content) LIKE $1
ORDER BY created_at DESC
LIMIT 10
`, like); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	for _, row := range posts {
		items = append(items, SearchResultItem{ID: row.ID, Title: row.Title, Type: "blog", Slug: row.Slug})
	}

	events := []struct {
		ID    string    `db:"id"`
		Title string    `db:"title"`
		Date  time.Time `db:"date"`
	}{}
	if err := s.DB.Select(&events, `
SELECT id, title, date
FROM events
WHERE lower(title) LIKE $1 OR lower(location) LIKE $1
ORDER BY date ASC
LIMIT 10
`, like); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	for _, row := range events {
		items = append(items, SearchResultItem{ID: row.ID, Title: row.Title, Type: "event", Date: row.Date.Format("2006-01-02")})
	}

	WriteJSON(w, http.StatusOK, SearchResponse{Items: items})
}

func (s *Server) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var req VisitRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	ip := resolveClientIP(r)
	ua := trimString(r.Header.Get("User-Agent"), 512)
	path := trimString(ptrToString(req.Path), 255)
	ref := trimString(ptrToString(req.Referrer), 512)
	_, _ = s.DB.Exec(`
INSERT INTO site_visits (id, ip_address, user_agent, path, referrer, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, uuid.NewString(), nullIfEmpty(ip), nullIfEmpty(ua), nullIfEmpty(path), nullIfEmpty(ref), time.Now().UTC())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) VisitCount(w http.ResponseWriter, r *http.Request) {
	var total int
	_ = s.DB.Get(&total, `SELECT count(*) FROM site_visits`)
	WriteJSON(w, http.StatusOK, VisitCountResponse{Total: total})
}

func resolveClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return r.RemoteAddr
}

func ptrToString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
