package events

import "time"

// EventType enumerates loyalty events.
type EventType string

const (
	EventUserRegistered EventType = "user.registered"
	EventTripRecorded   EventType = "trip.recorded"
	EventPointsRedeemed EventType = "points.redeemed"
)

// Event is the envelope published through the dispatcher.
type Event struct {
	ID        string
	Type      EventType
	UserID    int64
	Timestamp time.Time
	Payload   any
}

// UserRegisteredPayload carries registration details.
type UserRegisteredPayload struct {
	Name  string
	Email string
}

// TripRecordedPayload carries trip award details.
type TripRecordedPayload struct {
	TripID       int64
	Modal        string
	PointsEarned int
}

// PointsRedeemedPayload carries redemption details.
type PointsRedeemedPayload struct {
	RedemptionID int64
	Benefit      string
	PointsSpent  int
	Code         string
}
