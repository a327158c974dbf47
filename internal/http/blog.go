package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"championsite-backend-go/internal/models"
	"championsite-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type BlogPostDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	Tags          []string  `json:"tags"`
	FeaturedImage *string   `json:"featuredImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type BlogListResponse struct {
	Success     bool          `json:"success"`
	Data        []BlogPostDTO `json:"data"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

type BlogPostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
	FeaturedImage *string  `json:"featuredImage"`
}

func toBlogPostDTO(post models.BlogPost) BlogPostDTO {
	tags := []string{}
	_ = json.Unmarshal(post.Tags, &tags)
	return BlogPostDTO{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Content:       post.Content,
		Author:        post.Author,
		Tags:          tags,
		FeaturedImage: post.FeaturedImage,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

func (s *Server) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := paging(r, 10)
	var total int
	if err := s.DB.Get(&total, `SELECT count(*) FROM blog_posts`); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch blog posts")
		return
	}
	rows := []models.BlogPost{}
	if err := s.DB.Select(&rows, `
SELECT id, title, slug, content, author, tags, featured_image, created_at, updated_at
FROM blog_posts
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch blog posts")
		return
	}
	items := make([]BlogPostDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toBlogPostDTO(row))
	}
	WriteJSON(w, http.StatusOK, BlogListResponse{
		Success:     true,
		Data:        items,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	})
}

func (s *Server) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.fetchBlogPost(chi.URLParam(r, "slug"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	WriteSuccess(w, http.StatusOK, toBlogPostDTO(post), "")
}

func (s *Server) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req BlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		WriteError(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = "Admin"
	}
	slug := services.Slugify(title)
	var exists bool
	if err := s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE title = $1 OR slug = $2)`, title, slug); err != nil {
		WriteError(w, http.StatusInternalServerError, "Error creating blog post")
		return
	}
	if exists {
		WriteError(w, http.StatusConflict, "A blog post with this title already exists")
		return
	}
	tags, _ := json.Marshal(emptyIfNil(req.Tags))
	now := time.Now().UTC()
	post := models.BlogPost{
		ID:            uuid.NewString(),
		Title:         title,
		Slug:          slug,
		Content:       req.Content,
		Author:        author,
		Tags:          tags,
		FeaturedImage: req.FeaturedImage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	_, err := s.DB.Exec(`
INSERT INTO blog_posts (id, title, slug, content, author, tags, featured_image, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
`, post.ID, post.Title, post.Slug, post.Content, post.Author, post.Tags, post.FeaturedImage, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error creating blog post")
		return
	}
	WriteSuccess(w, http.StatusCreated, toBlogPostDTO(post), "")
}

func (s *Server) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.fetchBlogPost(chi.URLParam(r, "slug"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	var req BlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		WriteError(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	// Slug follows the title, same as on create.
	slug := services.Slugify(title)
	if slug != post.Slug {
		var exists bool
		if err := s.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`, slug, post.ID); err != nil {
			WriteError(w, http.StatusInternalServerError, "Error updating blog post")
			return
		}
		if exists {
			WriteError(w, http.StatusConflict, "A blog post with this title already exists")
			return
		}
	}
	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = post.Author
	}
	tags, _ := json.Marshal(emptyIfNil(req.Tags))
	var updated models.BlogPost
	err = s.DB.Get(&updated, `
UPDATE blog_posts
SET title = $2, slug = $3, content = $4, author = $5, tags = $6, featured_image = $7, updated_at = $8
WHERE id = $1
RETURNING id, title, slug, content, author, tags, featured_image, created_at, updated_at
`, post.ID, title, slug, req.Content, author, tags, req.FeaturedImage, time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error updating blog post")
		return
	}
	WriteSuccess(w, http.StatusOK, toBlogPostDTO(updated), "")
}

func (s *Server) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	result, err := s.DB.Exec(`DELETE FROM blog_posts WHERE slug = $1`, chi.URLParam(r, "slug"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error deleting blog post")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	WriteSuccess(w, http.StatusOK, nil, "Blog post deleted")
}

func (s *Server) fetchBlogPost(slug string) (models.BlogPost, error) {
	var post models.BlogPost
	err := s.DB.Get(&post, `
SELECT id, title, slug, content, author, tags, featured_image, created_at, updated_at
FROM blog_posts
WHERE slug = $1
`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BlogPost{}, services.ErrNotFound("Blog post not found")
	}
	return post, err
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
