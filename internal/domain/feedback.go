package domain

import "time"

// CrowdingReport is an append-only rider report about how full a line was.
type CrowdingReport struct {
	ID         int64
	UserID     int64
	Line       string
	Crowding   string
	ReportedAt time.Time
}

// FeedbackStats aggregates a user's crowding reports.
type FeedbackStats struct {
	Total     int64 `json:"total"`
	LastSeven int64 `json:"last_7_days"`
}
