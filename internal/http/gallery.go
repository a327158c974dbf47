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

type GalleryFolderDTO struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	Category        string    `json:"category"`
	PreviewImageURL string    `json:"previewImageUrl"`
	Images          []string  `json:"images"`
	CreatedAt       time.Time `json:"createdAt"`
}

type GalleryListResponse struct {
	Success     bool               `json:"success"`
	Data        []GalleryFolderDTO `json:"data"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
}

type GalleryFolderRequest struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	Category        string   `json:"category"`
	PreviewImageURL string   `json:"previewImageUrl"`
	Images          []string `json:"images"`
}

func toGalleryFolderDTO(folder models.GalleryFolder) GalleryFolderDTO {
	images := []string{}
	_ = json.Unmarshal(folder.Images, &images)
	return GalleryFolderDTO{
		ID:              folder.ID,
		Title:           folder.Title,
		Description:     folder.Description,
		Category:        folder.Category,
		PreviewImageURL: folder.PreviewImageURL,
		Images:          images,
		CreatedAt:       folder.CreatedAt,
	}
}

func (s *Server) ListGalleryFolders(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := paging(r, 10)
	var total int
	if err := s.DB.Get(&total, `SELECT count(*) FROM gallery_folders`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch gallery folders")
		return
	}
	rows := []models.GalleryFolder{}
	if err := s.DB.Select(&rows, `
SELECT id, title, description, category, preview_image_url, images, created_at, updated_at
FROM gallery_folders
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch gallery folders")
		return
	}
	items := make([]GalleryFolderDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toGalleryFolderDTO(row))
	}
	WriteJSON(w, http.StatusOK, GalleryListResponse{
		Success:     true,
		Data:        items,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
	})
}

func (s *Server) GetGalleryFolder(w http.ResponseWriter, r *http.Request) {
	var folder models.GalleryFolder
	err := s.DB.Get(&folder, `
SELECT id, title, description, category, preview_image_url, images, created_at, updated_at
FROM gallery_folders
WHERE id = $1
`, chi.URLParam(r, "folderId"))
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, http.StatusNotFound, "Folder not found")
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch folder")
		return
	}
	WriteSuccess(w, http.StatusOK, toGalleryFolderDTO(folder), "")
}

func (s *Server) CreateGalleryFolder(w http.ResponseWriter, r *http.Request) {
	var req GalleryFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.PreviewImageURL) == "" || len(req.Images) == 0 {
		WriteError(w, http.StatusBadRequest, "Title, preview image, and at least one image are required.")
		return
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "General"
	}
	images, _ := json.Marshal(req.Images)
	now := time.Now().UTC()
	folder := models.GalleryFolder{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     req.Description,
		Category:        category,
		PreviewImageURL: strings.TrimSpace(req.PreviewImageURL),
		Images:          images,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	_, err := s.DB.Exec(`
INSERT INTO gallery_folders (id, title, description, category, preview_image_url, images, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
`, folder.ID, folder.Title, folder.Description, folder.Category, folder.PreviewImageURL, folder.Images, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error creating gallery folder")
		return
	}
	WriteSuccess(w, http.StatusCreated, toGalleryFolderDTO(folder), "")
}

func (s *Server) DeleteGalleryFolder(w http.ResponseWriter, r *http.Request) {
	result, err := s.DB.Exec(`DELETE FROM gallery_folders WHERE id = $1`, chi.URLParam(r, "folderId"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error deleting folder")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Folder not found")
		return
	}
	WriteSuccess(w, http.StatusOK, nil, "Folder deleted")
}
