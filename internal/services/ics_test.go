package services

import (
	"strings"
	"testing"
	"time"

	"championsite-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sunday, Service; Special", `Sunday\, Service\; Special`},
		{`back\slash`, `back\\slash`},
		{"line one\nline two", `line one\nline two`},
		{"plain text", "plain text"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeICS(tt.in))
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Youth Conference 2026", "youth-conference-2026"},
		{"  Easter   Service!  ", "easter-service"},
		{"Prayer & Fasting: Week #1", "prayer-fasting-week-1"},
		{"---", ""},
		{"Already-Slugged", "already-slugged"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in))
	}
}

func TestBuildEventICS(t *testing.T) {
	description := "Bring your family, friends; everyone welcome"
	event := models.Event{
		ID:          "evt-42",
		Title:       "Easter Service",
		Date:        time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC),
		Location:    "Main Hall, Building B",
		Description: &description,
	}
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	payload := BuildEventICS(event, now)
	lines := strings.Split(payload, "\r\n")

	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Equal(t, "END:VCALENDAR", lines[len(lines)-1])
	assert.Contains(t, lines, "UID:evt-42@championsite")
	assert.Contains(t, lines, "DTSTAMP:20260320T120000Z")
	assert.Contains(t, lines, "DTSTART:20260405T100000Z")
	assert.Contains(t, lines, "SUMMARY:Easter Service")
	assert.Contains(t, lines, `LOCATION:Main Hall\, Building B`)
	assert.Contains(t, lines, `DESCRIPTION:Bring your family\, friends\; everyone welcome`)
}

func TestBuildEventICSOmitsEmptyFields(t *testing.T) {
	event := models.Event{
		ID:    "evt-7",
		Title: "Midweek Prayer",
		Date:  time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
	}
	payload := BuildEventICS(event, time.Now())

	assert.NotContains(t, payload, "LOCATION:")
	assert.NotContains(t, payload, "DESCRIPTION:")
}
