package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{99, 10, 10},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, totalPages(tt.total, tt.limit))
	}
}

func TestPaging(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=20", nil)
	page, limit, offset := paging(req, 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)
}

func TestPagingDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	page, limit, offset := paging(req, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)
}

func TestPagingRejectsBadInput(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=-2&limit=abc", nil)
	page, limit, offset := paging(req, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)
}

func TestPagingCapsLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5000", nil)
	_, limit, _ := paging(req, 10)
	assert.Equal(t, 100, limit)
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "hello", trimString("  hello  ", 10))
	assert.Equal(t, "he", trimString("hello", 2))
	assert.Equal(t, "", trimString("   ", 10))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Nil(t, nullIfEmpty("   "))
	value := nullIfEmpty("x")
	if assert.NotNil(t, value) {
		assert.Equal(t, "x", *value)
	}
}

func TestResolveClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", resolveClientIP(req))

	direct := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, strings.HasPrefix(resolveClientIP(direct), "192.0.2."))
}
