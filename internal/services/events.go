package services

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// Event status values. The lifecycle engine assigns upcoming, today and
// completed from the event date. StatusOngoing is valid on the column but
// only reachable through a direct admin edit; the next reconcile overrides it
// once the date-driven rules disagree.
const (
	StatusUpcoming  = "upcoming"
	StatusToday     = "today"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// EventRetentionDays is how long a completed event is kept before the
// reconcile pass purges it.
const EventRetentionDays = 7

// StatusFor computes the status an event with the given date should carry at
// the given instant. Dates are compared at day granularity.
func StatusFor(date, now time.Time) string {
	today := truncateToDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	switch {
	case date.Before(today):
		return StatusCompleted
	case date.Before(tomorrow):
		return StatusToday
	default:
		return StatusUpcoming
	}
}

// ReconcileEvents re-derives every event's status from its date and purges
// completed events older than the retention window. It runs before each
// listing read rather than on a timer, so statuses can be stale between
// reads and self-correct on the next one. The steps are not wrapped in a
// transaction: each rule recomputes from the authoritative date column and is
// idempotent, so concurrent reads converge.
//
// The delete runs first so an expired completed event is never re-labelled by
// a later rule.
func ReconcileEvents(db *sqlx.DB, now time.Time) error {
	today := truncateToDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	retentionCutoff := today.AddDate(0, 0, -EventRetentionDays)

	if _, err := db.Exec(`DELETE FROM events WHERE status = $1 AND date < $2`, StatusCompleted, retentionCutoff); err != nil {
		return WrapError(err, "purge completed events")
	}
	if _, err := db.Exec(`UPDATE events SET status = $1, updated_at = $2 WHERE date < $3 AND status <> $1`, StatusCompleted, now.UTC(), today); err != nil {
		return WrapError(err, "mark completed events")
	}
	if _, err := db.Exec(`UPDATE events SET status = $1, updated_at = $2 WHERE date >= $3 AND date < $4 AND status <> $1`, StatusToday, now.UTC(), today, tomorrow); err != nil {
		return WrapError(err, "mark today events")
	}
	if _, err := db.Exec(`UPDATE events SET status = $1, updated_at = $2 WHERE date >= $3 AND status <> $1`, StatusUpcoming, now.UTC(), tomorrow); err != nil {
		return WrapError(err, "mark upcoming events")
	}
	return nil
}

// PublicEventStatuses are the statuses visible on the public listing when the
// includeAll flag is not set.
func PublicEventStatuses() []string {
	return []string{StatusUpcoming, StatusToday}
}

func ValidEventStatus(status string) bool {
	switch status {
	case StatusUpcoming, StatusToday, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
