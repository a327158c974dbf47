package services

import (
	"github.com/jmoiron/sqlx"
)

// Testimonial moderation states. Submissions start pending; approve and
// reject may be applied from any non-deleted state, so re-moderation is
// allowed in both directions. Only approved rows reach the public listing.
const (
	TestimonialPending  = "pending"
	TestimonialApproved = "approved"
	TestimonialRejected = "rejected"
)

func ValidTestimonialStatus(status string) bool {
	switch status {
	case TestimonialPending, TestimonialApproved, TestimonialRejected:
		return true
	}
	return false
}

// TestimonialCounts holds per-status totals for the moderation dashboard.
type TestimonialCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

func CountTestimonials(db *sqlx.DB) (TestimonialCounts, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	if err := db.Select(&rows, `SELECT status, count(*) AS count FROM testimonials GROUP BY status`); err != nil {
		return TestimonialCounts{}, err
	}
	counts := TestimonialCounts{}
	for _, row := range rows {
		switch row.Status {
		case TestimonialPending:
			counts.Pending = row.Count
		case TestimonialApproved:
			counts.Approved = row.Count
		case TestimonialRejected:
			counts.Rejected = row.Count
		}
	}
	counts.Total = counts.Pending + counts.Approved + counts.Rejected
	return counts, nil
}
