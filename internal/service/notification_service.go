package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pontu-app/rewards-service/internal/events"
)

// NotificationService reacts to loyalty events. Delivery is a logging stub;
// the subscription surface is where a push/email integration would hang.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes notification handlers to loyalty events.
func (s *NotificationService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventUserRegistered, s.onUserRegistered)
	s.dispatcher.Subscribe(events.EventTripRecorded, s.onTripRecorded)
	s.dispatcher.Subscribe(events.EventPointsRedeemed, s.onPointsRedeemed)
}

func (s *NotificationService) onUserRegistered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	s.logger.Info("welcome notification",
		zap.Int64("user_id", event.UserID),
		zap.String("email", payload.Email),
	)
	return nil
}

func (s *NotificationService) onTripRecorded(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TripRecordedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("trip points notification",
		zap.Int64("user_id", event.UserID),
		zap.String("modal", payload.Modal),
		zap.Int("points_earned", payload.PointsEarned),
	)
	return nil
}

func (s *NotificationService) onPointsRedeemed(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PointsRedeemedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("redemption notification",
		zap.Int64("user_id", event.UserID),
		zap.String("benefit", payload.Benefit),
		zap.Int("points_spent", payload.PointsSpent),
	)
	return nil
}
