package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pontu-app/rewards-service/internal/domain"
	"github.com/pontu-app/rewards-service/internal/events"
	"github.com/pontu-app/rewards-service/internal/repository"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

const defaultTripAward = 10

// modalAwards fixes the points earned per transport mode. Awards are stamped
// onto the trip at write time; changing this table never rewrites history.
var modalAwards = map[domain.Modal]int{
	domain.ModalMetro:   10,
	domain.ModalTrain:   10,
	domain.ModalBus:     12,
	domain.ModalBike:    15,
	domain.ModalScooter: 15,
}

// TripService records trips and credits the points they earn.
type TripService struct {
	trips      repository.TripRepository
	dispatcher events.Dispatcher
}

// NewTripService constructs the service.
func NewTripService(trips repository.TripRepository, dispatcher events.Dispatcher) *TripService {
	return &TripService{trips: trips, dispatcher: dispatcher}
}

// AwardForModal returns the points a trip on the given modal earns.
// Lookup is case-insensitive; unknown modals earn the default award.
func AwardForModal(modal string) int {
	if award, ok := modalAwards[domain.Modal(strings.ToLower(modal))]; ok {
		return award
	}
	return defaultTripAward
}

// RecordTrip persists a trip and credits its award in one unit, returning
// the points earned.
func (s *TripService) RecordTrip(ctx context.Context, userID int64, modal, origin, destination string) (*domain.Trip, error) {
	modal = strings.TrimSpace(modal)
	if modal == "" {
		return nil, apperrors.NewValidationError("modal required", nil)
	}

	trip := &domain.Trip{
		UserID:       userID,
		Modal:        domain.Modal(strings.ToLower(modal)),
		Origin:       optional(origin),
		Destination:  optional(destination),
		PointsEarned: AwardForModal(modal),
	}
	if err := s.trips.CreateWithCredit(ctx, trip); err != nil {
		return nil, apperrors.NewPersistenceFailure("could not record trip", err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:   events.EventTripRecorded,
		UserID: userID,
		Payload: events.TripRecordedPayload{
			TripID:       trip.ID,
			Modal:        string(trip.Modal),
			PointsEarned: trip.PointsEarned,
		},
	})
	return trip, nil
}

// History returns the user's most recent trips, newest first.
func (s *TripService) History(ctx context.Context, userID int64, limit int) ([]domain.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return trips, nil
}

func optional(val string) *string {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	return &val
}

func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
