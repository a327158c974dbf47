package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"championsite-backend-go/internal/services"
)

func parseInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// paging resolves the shared page/limit convention: 1-based page, caller
// supplied default limit, capped at 100.
func paging(r *http.Request, defaultLimit int) (page, limit, offset int) {
	page = parseInt(r.URL.Query().Get("page"), 1)
	limit = parseInt(r.URL.Query().Get("limit"), defaultLimit)
	if limit > 100 {
		limit = 100
	}
	offset = (page - 1) * limit
	return page, limit, offset
}

func totalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}

func mapServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if serr, ok := err.(services.ServiceError); ok {
		WriteError(w, serr.Status, serr.Message)
		return true
	}
	return false
}

func trimString(value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

func nullIfEmpty(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
