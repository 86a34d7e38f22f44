package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/pontu-app/rewards-service/internal/domain"
	"github.com/pontu-app/rewards-service/internal/events"
	"github.com/pontu-app/rewards-service/internal/repository"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

const (
	codePrefix       = "PONTU-"
	codeAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts  = 5
	minRedeemableAmt = 1
)

// RewardsService exchanges points for benefits, issuing unique codes.
type RewardsService struct {
	redemptions repository.RedemptionRepository
	dispatcher  events.Dispatcher
	codeLength  int
}

// NewRewardsService constructs the service.
func NewRewardsService(redemptions repository.RedemptionRepository, dispatcher events.Dispatcher, codeLength int) *RewardsService {
	if codeLength < 6 || codeLength > 8 {
		codeLength = 8
	}
	return &RewardsService{redemptions: redemptions, dispatcher: dispatcher, codeLength: codeLength}
}

// Redeem debits the cost and records the redemption as one unit. The balance
// check runs inside the same transaction as the insert, so concurrent
// redemptions cannot overdraw; a code collision gets a fresh code and
// another attempt.
func (s *RewardsService) Redeem(ctx context.Context, userID int64, benefit string, pointsCost int) (*domain.Redemption, error) {
	benefit = strings.TrimSpace(benefit)
	if benefit == "" {
		return nil, apperrors.NewValidationError("benefit required", nil)
	}
	if pointsCost < minRedeemableAmt {
		return nil, apperrors.NewValidationError("points_cost must be positive", nil)
	}

	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateCode(s.codeLength)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}

		redemption := &domain.Redemption{
			UserID:      userID,
			Benefit:     benefit,
			PointsSpent: pointsCost,
			Code:        code,
		}
		err = s.redemptions.CreateWithDebit(ctx, redemption)
		switch err {
		case nil:
			publish(ctx, s.dispatcher, events.Event{
				Type:   events.EventPointsRedeemed,
				UserID: userID,
				Payload: events.PointsRedeemedPayload{
					RedemptionID: redemption.ID,
					Benefit:      redemption.Benefit,
					PointsSpent:  redemption.PointsSpent,
					Code:         redemption.Code,
				},
			})
			return redemption, nil
		case repository.ErrInsufficientPoints:
			return nil, apperrors.NewInsufficientPoints()
		case repository.ErrDuplicateCode:
			lastErr = err
			continue
		default:
			return nil, apperrors.NewPersistenceFailure("could not redeem benefit", err)
		}
	}
	return nil, apperrors.NewPersistenceFailure("could not redeem benefit", lastErr)
}

// History returns the user's redemptions, newest first.
func (s *RewardsService) History(ctx context.Context, userID int64) ([]domain.Redemption, error) {
	redemptions, err := s.redemptions.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return redemptions, nil
}

// generateCode draws length uppercase-alphanumeric characters from
// crypto/rand behind the PONTU- prefix.
func generateCode(length int) (string, error) {
	var b strings.Builder
	b.WriteString(codePrefix)
	alphabetLen := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < length; i++ {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[idx.Int64()])
	}
	return b.String(), nil
}
