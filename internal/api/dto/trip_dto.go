package dto

import "time"

// RecordTripRequest payload for registering a journey.
type RecordTripRequest struct {
	Modal       string `json:"modal" validate:"required"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// TripView is a single trip in history listings.
type TripView struct {
	ID           int64     `json:"id"`
	Modal        string    `json:"modal"`
	Origin       *string   `json:"origin,omitempty"`
	Destination  *string   `json:"destination,omitempty"`
	PointsEarned int       `json:"points_earned"`
	TakenAt      time.Time `json:"taken_at"`
}
