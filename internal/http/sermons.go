package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"championsite-backend-go/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SermonDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Preacher    string  `json:"preacher"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
	MediaURL    *string `json:"mediaUrl,omitempty"`
}

type SermonListResponse struct {
	Success    bool          `json:"success"`
	Data       []SermonDTO   `json:"data"`
	Pagination PaginationDTO `json:"pagination"`
}

type SermonRequest struct {
	Title       string  `json:"title"`
	Preacher    string  `json:"preacher"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
	MediaURL    *string `json:"mediaUrl"`
}

func toSermonDTO(sermon models.Sermon) SermonDTO {
	return SermonDTO{
		ID:          sermon.ID,
		Title:       sermon.Title,
		Preacher:    sermon.Preacher,
		Date:        sermon.Date.UTC().Format(time.RFC3339),
		Description: sermon.Description,
		MediaURL:    sermon.MediaURL,
	}
}

func (s *Server) ListSermons(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := paging(r, 10)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	args := []interface{}{}
	where := ""
	if search != "" {
		where = "WHERE lower(title) LIKE $1 OR lower(preacher) LIKE $1"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	var total int
	if err := s.DB.Get(&total, "SELECT count(*) FROM sermons "+where, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch sermons")
		return
	}
	args = append(args, limit, offset)
	query := `
SELECT id, title, preacher, date, description, media_url, created_at, updated_at
FROM sermons
` + where + `
ORDER BY date DESC, created_at DESC
LIMIT $%d OFFSET $%d`
	query = fmt.Sprintf(query, len(args)-1, len(args))
	rows := []models.Sermon{}
	if err := s.DB.Select(&rows, query, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch sermons")
		return
	}
	items := make([]SermonDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toSermonDTO(row))
	}
	WriteJSON(w, http.StatusOK, SermonListResponse{
		Success:    true,
		Data:       items,
		Pagination: PaginationDTO{Page: page, Limit: limit, Total: total, Pages: totalPages(total, limit)},
	})
}

func (s *Server) GetSermon(w http.ResponseWriter, r *http.Request) {
	var sermon models.Sermon
	err := s.DB.Get(&sermon, `
SELECT id, title, preacher, date, description, media_url, created_at, updated_at
FROM sermons
WHERE id = $1
`, chi.URLParam(r, "sermonId"))
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, http.StatusNotFound, "Sermon not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch sermon")
		return
	}
	WriteSuccess(w, http.StatusOK, toSermonDTO(sermon), "")
}

func (s *Server) CreateSermon(w http.ResponseWriter, r *http.Request) {
	var req SermonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	date, err := parseEventDate(req.Date)
	if err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Preacher) == "" {
		WriteError(w, http.StatusBadRequest, "Title, preacher, and date are required.")
		return
	}
	now := time.Now().UTC()
	sermon := models.Sermon{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Preacher:    strings.TrimSpace(req.Preacher),
		Date:        date,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = s.DB.Exec(`
INSERT INTO sermons (id, title, preacher, date, description, media_url, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
`, sermon.ID, sermon.Title, sermon.Preacher, sermon.Date, sermon.Description, sermon.MediaURL, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error creating sermon")
		return
	}
	WriteSuccess(w, http.StatusCreated, toSermonDTO(sermon), "Sermon created successfully.")
}

func (s *Server) UpdateSermon(w http.ResponseWriter, r *http.Request) {
	sermonID := chi.URLParam(r, "sermonId")
	var req SermonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	date, err := parseEventDate(req.Date)
	if err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Preacher) == "" {
		WriteError(w, http.StatusBadRequest, "Title, preacher, and date are required.")
		return
	}
	var sermon models.Sermon
	err = s.DB.Get(&sermon, `
UPDATE sermons
SET title = $2, preacher = $3, date = $4, description = $5, media_url = $6, updated_at = $7
WHERE id = $1
RETURNING id, title, preacher, date, description, media_url, created_at, updated_at
`, sermonID, strings.TrimSpace(req.Title), strings.TrimSpace(req.Preacher), date, req.Description, req.MediaURL, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, http.StatusNotFound, "Sermon not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error updating sermon")
		return
	}
	WriteSuccess(w, http.StatusOK, toSermonDTO(sermon), "")
}

func (s *Server) DeleteSermon(w http.ResponseWriter, r *http.Request) {
	result, err := s.DB.Exec(`DELETE FROM sermons WHERE id = $1`, chi.URLParam(r, "sermonId"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error deleting sermon")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Sermon not found")
		return
	}
	WriteSuccess(w, http.StatusOK, nil, "Sermon deleted")
}
