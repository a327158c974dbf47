package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"yesterday is completed", time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), StatusCompleted},
		{"last week is completed", time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), StatusCompleted},
		{"midnight today is today", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), StatusToday},
		{"later today is today", time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC), StatusToday},
		{"earlier today is still today", time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), StatusToday},
		{"midnight tomorrow is upcoming", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), StatusUpcoming},
		{"next month is upcoming", time.Date(2026, 4, 20, 18, 0, 0, 0, time.UTC), StatusUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.date, now))
		})
	}
}

func TestStatusForIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	date := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	first := StatusFor(date, now)
	second := StatusFor(date, now)
	assert.Equal(t, first, second)
}

func TestStatusForCrossesDayBoundary(t *testing.T) {
	date := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	beforeMidnight := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	afterMidnight := time.Date(2026, 3, 16, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, StatusToday, StatusFor(date, beforeMidnight))
	assert.Equal(t, StatusCompleted, StatusFor(date, afterMidnight))
}

func TestValidEventStatus(t *testing.T) {
	assert.True(t, ValidEventStatus(StatusUpcoming))
	assert.True(t, ValidEventStatus(StatusToday))
	assert.True(t, ValidEventStatus(StatusOngoing))
	assert.True(t, ValidEventStatus(StatusCompleted))
	assert.False(t, ValidEventStatus("cancelled"))
	assert.False(t, ValidEventStatus(""))
	assert.False(t, ValidEventStatus("Upcoming"))
}

func TestPublicEventStatuses(t *testing.T) {
	statuses := PublicEventStatuses()
	assert.Equal(t, []string{StatusUpcoming, StatusToday}, statuses)
}

func reconcileStore(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

// Expectations are ordered, so this also pins the purge running before any
// relabel step.
func TestReconcileEventsRunsStepsInOrder(t *testing.T) {
	db, mock := reconcileStore(t)
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	cutoff := today.AddDate(0, 0, -EventRetentionDays)

	mock.ExpectExec("DELETE FROM events").
		WithArgs(StatusCompleted, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE events SET status").
		WithArgs(StatusCompleted, now, today).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE events SET status").
		WithArgs(StatusToday, now, today, tomorrow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE events SET status").
		WithArgs(StatusUpcoming, now, tomorrow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, ReconcileEvents(db, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileEventsStopsWhenPurgeFails(t *testing.T) {
	db, mock := reconcileStore(t)
	mock.ExpectExec("DELETE FROM events").WillReturnError(errors.New("connection reset"))

	err := ReconcileEvents(db, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
