package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"championsite-backend-go/internal/models"
	"championsite-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type EventDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      string  `json:"status"`
}

type EventListResponse struct {
	Events     []EventDTO `json:"events"`
	TotalPages int        `json:"totalPages"`
}

type EventRequest struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

func toEventDTO(event models.Event) EventDTO {
	return EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Date:        event.Date.UTC().Format(time.RFC3339),
		Time:        event.Time,
		Location:    event.Location,
		Description: event.Description,
		ImageURL:    event.ImageURL,
		Category:    event.Category,
		Status:      event.Status,
	}
}

// ListEvents reconciles statuses first, then serves the page. Public callers
// see only upcoming/today events; includeAll=true returns everything for the
// admin view.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	if err := services.ReconcileEvents(s.DB, time.Now()); err != nil {
		log.Printf("events: reconcile: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	_, limit, offset := paging(r, 10)
	includeAll := r.URL.Query().Get("includeAll") == "true"

	args := []interface{}{}
	where := ""
	if !includeAll {
		statuses := services.PublicEventStatuses()
		where = "WHERE status IN ($1, $2)"
		args = append(args, statuses[0], statuses[1])
	}
	var total int
	if err := s.DB.Get(&total, "SELECT count(*) FROM events "+where, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	args = append(args, limit, offset)
	query := `
SELECT id, title, date, time, location, description, image_url, category, status, created_at, updated_at
FROM events
` + where + `
ORDER BY date ASC
LIMIT $%d OFFSET $%d`
	query = fmt.Sprintf(query, len(args)-1, len(args))
	rows := []models.Event{}
	if err := s.DB.Select(&rows, query, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	events := make([]EventDTO, 0, len(rows))
	for _, row := range rows {
		events = append(events, toEventDTO(row))
	}
	WriteJSON(w, http.StatusOK, EventListResponse{Events: events, TotalPages: totalPages(total, limit)})
}

func (s *Server) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 3)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	rows := []models.Event{}
	if err := s.DB.Select(&rows, `
SELECT id, title, date, time, location, description, image_url, category, status, created_at, updated_at
FROM events
WHERE date >= $1
ORDER BY date ASC
LIMIT $2
`, today, limit); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	events := make([]EventDTO, 0, len(rows))
	for _, row := range rows {
		events = append(events, toEventDTO(row))
	}
	WriteJSON(w, http.StatusOK, map[string][]EventDTO{"events": events})
}

func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.fetchEvent(chi.URLParam(r, "eventId"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "Event not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]EventDTO{"event": toEventDTO(event)})
}

func (s *Server) EventICS(w http.ResponseWriter, r *http.Request) {
	event, err := s.fetchEvent(chi.URLParam(r, "eventId"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "Event not found")
		return
	}
	ics := services.BuildEventICS(event, time.Now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.Slugify(event.Title)+".ics"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics))
}

func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	date, err := parseEventDate(req.Date)
	if err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Time) == "" || strings.TrimSpace(req.Location) == "" {
		WriteError(w, http.StatusBadRequest, "Title, date, time and location are required")
		return
	}
	now := time.Now().UTC()
	event := models.Event{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Date:        date,
		Time:        strings.TrimSpace(req.Time),
		Location:    strings.TrimSpace(req.Location),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Status:      services.StatusUpcoming,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = s.DB.Exec(`
INSERT INTO events (id, title, date, time, location, description, image_url, category, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)
`, event.ID, event.Title, event.Date, event.Time, event.Location, event.Description, event.ImageURL, event.Category, event.Status, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error creating event")
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]EventDTO{"event": toEventDTO(event)})
}

func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	date, err := parseEventDate(req.Date)
	if err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Time) == "" || strings.TrimSpace(req.Location) == "" {
		WriteError(w, http.StatusBadRequest, "Title, date, time and location are required")
		return
	}
	status := ""
	if req.Status != nil {
		status = strings.TrimSpace(*req.Status)
		if status != "" && !services.ValidEventStatus(status) {
			WriteError(w, http.StatusBadRequest, "Invalid event status")
			return
		}
	}
	now := time.Now().UTC()
	var result sql.Result
	if status != "" {
		result, err = s.DB.Exec(`
UPDATE events
SET title = $2, date = $3, time = $4, location = $5, description = $6, image_url = $7, category = $8, status = $9, updated_at = $10
WHERE id = $1
`, eventID, strings.TrimSpace(req.Title), date, strings.TrimSpace(req.Time), strings.TrimSpace(req.Location), req.Description, req.ImageURL, req.Category, status, now)
	} else {
		result, err = s.DB.Exec(`
UPDATE events
SET title = $2, date = $3, time = $4, location = $5, description = $6, image_url = $7, category = $8, updated_at = $9
WHERE id = $1
`, eventID, strings.TrimSpace(req.Title), date, strings.TrimSpace(req.Time), strings.TrimSpace(req.Location), req.Description, req.ImageURL, req.Category, now)
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error updating event")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Event not found")
		return
	}
	event, err := s.fetchEvent(eventID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error updating event")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]EventDTO{"event": toEventDTO(event)})
}

func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	result, err := s.DB.Exec(`DELETE FROM events WHERE id = $1`, chi.URLParam(r, "eventId"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error deleting event")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Event not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

func (s *Server) fetchEvent(eventID string) (models.Event, error) {
	var event models.Event
	err := s.DB.Get(&event, `
SELECT id, title, date, time, location, description, image_url, category, status, created_at, updated_at
FROM events
WHERE id = $1
`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, services.ErrNotFound("Event not found")
	}
	return event, err
}

func parseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}
