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
	"championsite-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TestimonialDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PaginationDTO struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type TestimonialListResponse struct {
	Success    bool                        `json:"success"`
	Data       []TestimonialDTO            `json:"data"`
	Pagination PaginationDTO               `json:"pagination"`
	Counts     *services.TestimonialCounts `json:"counts,omitempty"`
}

type TestimonialRequest struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func toTestimonialDTO(t models.Testimonial) TestimonialDTO {
	return TestimonialDTO{
		ID:        t.ID,
		Name:      t.Name,
		Title:     t.Title,
		Message:   t.Message,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// CreateTestimonial is public. Every submission starts pending regardless of
// what the client sends.
func (s *Server) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req TestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if name == "" || title == "" || message == "" {
		WriteError(w, http.StatusBadRequest, "Please provide a name, title, and message")
		return
	}
	now := time.Now().UTC()
	testimonial := models.Testimonial{
		ID:        uuid.NewString(),
		Name:      name,
		Title:     title,
		Message:   message,
		Status:    services.TestimonialPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.DB.Exec(`
INSERT INTO testimonials (id, name, title, message, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
`, testimonial.ID, testimonial.Name, testimonial.Title, testimonial.Message, testimonial.Status, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error creating testimonial")
		return
	}
	WriteSuccess(w, http.StatusCreated, toTestimonialDTO(testimonial),
		"Your testimony has been submitted and is awaiting approval.")
}

func (s *Server) ListApprovedTestimonials(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := paging(r, 10)
	var total int
	if err := s.DB.Get(&total, `SELECT count(*) FROM testimonials WHERE status = $1`, services.TestimonialApproved); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}
	rows := []models.Testimonial{}
	if err := s.DB.Select(&rows, `
SELECT id, name, title, message, status, created_at, updated_at
FROM testimonials
WHERE status = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`, services.TestimonialApproved, limit, offset); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}
	items := make([]TestimonialDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toTestimonialDTO(row))
	}
	WriteJSON(w, http.StatusOK, TestimonialListResponse{
		Success:    true,
		Data:       items,
		Pagination: PaginationDTO{Page: page, Limit: limit, Total: total, Pages: totalPages(total, limit)},
	})
}

// ListAllTestimonials serves the moderation dashboard: optional status
// filter plus per-status counts.
func (s *Server) ListAllTestimonials(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := paging(r, 20)
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	args := []interface{}{}
	where := ""
	if services.ValidTestimonialStatus(status) {
		where = "WHERE status = $1"
		args = append(args, status)
	}
	var total int
	if err := s.DB.Get(&total, "SELECT count(*) FROM testimonials "+where, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}
	args = append(args, limit, offset)
	query := `
SELECT id, name, title, message, status, created_at, updated_at
FROM testimonials
` + where + `
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d`
	query = fmt.Sprintf(query, len(args)-1, len(args))
	rows := []models.Testimonial{}
	if err := s.DB.Select(&rows, query, args...); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}
	counts, err := services.CountTestimonials(s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}
	items := make([]TestimonialDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toTestimonialDTO(row))
	}
	WriteJSON(w, http.StatusOK, TestimonialListResponse{
		Success:    true,
		Data:       items,
		Pagination: PaginationDTO{Page: page, Limit: limit, Total: total, Pages: totalPages(total, limit)},
		Counts:     &counts,
	})
}

func (s *Server) ApproveTestimonial(w http.ResponseWriter, r *http.Request) {
	s.moderateTestimonial(w, r, services.TestimonialApproved)
}

func (s *Server) RejectTestimonial(w http.ResponseWriter, r *http.Request) {
	s.moderateTestimonial(w, r, services.TestimonialRejected)
}

// moderateTestimonial moves a testimonial to the given status. Transitions
// are unconstrained between approved and rejected, so re-review is allowed.
func (s *Server) moderateTestimonial(w http.ResponseWriter, r *http.Request, status string) {
	testimonialID := chi.URLParam(r, "testimonialId")
	var row models.Testimonial
	err := s.DB.Get(&row, `
UPDATE testimonials
SET status = $2, updated_at = $3
WHERE id = $1
RETURNING id, name, title, message, status, created_at, updated_at
`, testimonialID, status, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, http.StatusNotFound, "Testimonial not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error updating testimonial")
		return
	}
	WriteSuccess(w, http.StatusOK, toTestimonialDTO(row), "")
}

func (s *Server) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	result, err := s.DB.Exec(`DELETE FROM testimonials WHERE id = $1`, chi.URLParam(r, "testimonialId"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error deleting testimonial")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Testimonial not found")
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]string{}, "")
}
