package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"championsite-backend-go/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultStreamTitle       = "Sunday Service Live"
	defaultStreamDescription = "Join us for worship and the Word!"
)

type LiveStreamDTO struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	YoutubeURL    string     `json:"youtubeUrl"`
	IsActive      bool       `json:"isActive"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`
	Description   string     `json:"description"`
	Thumbnail     *string    `json:"thumbnail,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type LiveStreamRequest struct {
	Title         string     `json:"title"`
	YoutubeURL    string     `json:"youtubeUrl"`
	ScheduledTime *time.Time `json:"scheduledTime"`
	Description   string     `json:"description"`
	Thumbnail     *string    `json:"thumbnail"`
}

func toLiveStreamDTO(stream models.LiveStream) LiveStreamDTO {
	return LiveStreamDTO{
		ID:            stream.ID,
		Title:         stream.Title,
		YoutubeURL:    stream.YoutubeURL,
		IsActive:      stream.IsActive,
		ScheduledTime: stream.ScheduledTime,
		Description:   stream.Description,
		Thumbnail:     stream.Thumbnail,
		CreatedAt:     stream.CreatedAt,
	}
}

// GetLiveStream returns the single active stream pointer.
func (s *Server) GetLiveStream(w http.ResponseWriter, r *http.Request) {
	var stream models.LiveStream
	err := s.DB.Get(&stream, `
SELECT id, title, youtube_url, is_active, scheduled_time, description, thumbnail, created_at, updated_at
FROM live_streams
WHERE is_active = TRUE
ORDER BY created_at DESC
LIMIT 1
`)
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, http.StatusNotFound, "No active live stream found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch live stream")
		return
	}
	WriteSuccess(w, http.StatusOK, toLiveStreamDTO(stream), "")
}

func (s *Server) ListLiveStreams(w http.ResponseWriter, r *http.Request) {
	rows := []models.LiveStream{}
	if err := s.DB.Select(&rows, `
SELECT id, title, youtube_url, is_active, scheduled_time, description, thumbnail, created_at, updated_at
FROM live_streams
ORDER BY created_at DESC
`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch live streams")
		return
	}
	items := make([]LiveStreamDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toLiveStreamDTO(row))
	}
	WriteSuccess(w, http.StatusOK, items, "")
}

// CreateLiveStream inserts a new active stream and deactivates every other
// one first, so at most one stream is active at a time.
func (s *Server) CreateLiveStream(w http.ResponseWriter, r *http.Request) {
	var req LiveStreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.YoutubeURL) == "" {
		WriteError(w, http.StatusBadRequest, "YouTube URL is required")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultStreamTitle
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultStreamDescription
	}
	now := time.Now().UTC()
	if _, err := s.DB.Exec(`UPDATE live_streams SET is_active = FALSE, updated_at = $1 WHERE is_active = TRUE`, now); err != nil {
		WriteError(w, http.StatusInternalServerError, "Error creating live stream")
		return
	}
	stream := models.LiveStream{
		ID:            uuid.NewString(),
		Title:         title,
		YoutubeURL:    strings.TrimSpace(req.YoutubeURL),
		IsActive:      true,
		ScheduledTime: req.ScheduledTime,
		Description:   description,
		Thumbnail:     req.Thumbnail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	_, err := s.DB.Exec(`
INSERT INTO live_streams (id, title, youtube_url, is_active, scheduled_time, description, thumbnail, created_at, updated_at)
VALUES ($1,$2,$3,TRUE,$4,$5,$6,$7,$7)
`, stream.ID, stream.Title, stream.YoutubeURL, stream.ScheduledTime, stream.Description, stream.Thumbnail, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error creating live stream")
		return
	}
	WriteSuccess(w, http.StatusCreated, toLiveStreamDTO(stream), "Live stream created successfully")
}

func (s *Server) UpdateLiveStream(w http.ResponseWriter, r *http.Request) {
	streamID := chi.URLParam(r, "streamId")
	var req LiveStreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.YoutubeURL) == "" {
		WriteError(w, http.StatusBadRequest, "YouTube URL is required")
		return
	}
	var stream models.LiveStream
	err := s.DB.Get(&stream, `
UPDATE live_streams
SET title = $2, youtube_url = $3, scheduled_time = $4, description = $5, thumbnail = $6, updated_at = $7
WHERE id = $1
RETURNING id, title, youtube_url, is_active, scheduled_time, description, thumbnail, created_at, updated_at
`, streamID, strings.TrimSpace(req.Title), strings.TrimSpace(req.YoutubeURL), req.ScheduledTime, strings.TrimSpace(req.Description), req.Thumbnail, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, http.StatusNotFound, "Live stream not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error updating live stream")
		return
	}
	WriteSuccess(w, http.StatusOK, toLiveStreamDTO(stream), "")
}

func (s *Server) DeleteLiveStream(w http.ResponseWriter, r *http.Request) {
	result, err := s.DB.Exec(`DELETE FROM live_streams WHERE id = $1`, chi.URLParam(r, "streamId"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error deleting live stream")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Live stream not found")
		return
	}
	WriteSuccess(w, http.StatusOK, nil, "Live stream deleted successfully")
}

// ToggleLiveStream flips the active flag; activating a stream deactivates
// every other one.
func (s *Server) ToggleLiveStream(w http.ResponseWriter, r *http.Request) {
	streamID := chi.URLParam(r, "streamId")
	var stream models.LiveStream
	err := s.DB.Get(&stream, `
SELECT id, title, youtube_url, is_active, scheduled_time, description, thumbnail, created_at, updated_at
FROM live_streams
WHERE id = $1
`, streamID)
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, http.StatusNotFound, "Live stream not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error updating live stream")
		return
	}
	now := time.Now().UTC()
	if !stream.IsActive {
		if _, err := s.DB.Exec(`UPDATE live_streams SET is_active = FALSE, updated_at = $1 WHERE is_active = TRUE`, now); err != nil {
			WriteError(w, http.StatusInternalServerError, "Error updating live stream")
			return
		}
	}
	err = s.DB.Get(&stream, `
UPDATE live_streams
SET is_active = NOT is_active, updated_at = $2
WHERE id = $1
RETURNING id, title, youtube_url, is_active, scheduled_time, description, thumbnail, created_at, updated_at
`, streamID, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error updating live stream")
		return
	}
	WriteSuccess(w, http.StatusOK, toLiveStreamDTO(stream), "")
}
