package services

import (
	"regexp"
	"strings"
	"time"

	"championsite-backend-go/internal/models"
)

const icsTimeLayout = "20060102T150405Z"

// BuildEventICS renders a single-VEVENT iCalendar payload for the event.
// SUMMARY, LOCATION and DESCRIPTION text is escaped per RFC 5545: backslash,
// newline, comma and semicolon.
func BuildEventICS(event models.Event, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//championsite//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + event.ID + "@championsite",
		"DTSTAMP:" + now.UTC().Format(icsTimeLayout),
		"DTSTART:" + event.Date.UTC().Format(icsTimeLayout),
		"SUMMARY:" + EscapeICS(event.Title),
	}
	if strings.TrimSpace(event.Location) != "" {
		lines = append(lines, "LOCATION:"+EscapeICS(event.Location))
	}
	if event.Description != nil && strings.TrimSpace(*event.Description) != "" {
		lines = append(lines, "DESCRIPTION:"+EscapeICS(*event.Description))
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}

func EscapeICS(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		"\n", `\n`,
		",", `\,`,
		";", `\;`,
	)
	return replacer.Replace(text)
}

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrimEnds = regexp.MustCompile(`(^-|-$)+`)
)

// Slugify lowercases text and collapses every non-alphanumeric run into a
// single hyphen. Used for ICS filenames and blog post slugs.
func Slugify(text string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(text), "-")
	return slugTrimEnds.ReplaceAllString(slug, "")
}
