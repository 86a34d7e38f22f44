package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pontu-app/rewards-service/internal/repository"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

var codePattern = regexp.MustCompile(`^PONTU-[A-Z0-9]{6,8}$`)

func TestRedeem_DebitsExactCost(t *testing.T) {
	store := repository.NewMemoryStore()
	userID := registerTestUser(t, store)
	trips := NewTripService(store.Trips(), nil)
	rewards := NewRewardsService(store.Redemptions(), nil, 8)
	ctx := context.Background()

	_, err := trips.RecordTrip(ctx, userID, "bike", "", "")
	require.NoError(t, err)

	redemption, err := rewards.Redeem(ctx, userID, "Coffee", 10)
	require.NoError(t, err)
	require.Regexp(t, codePattern, redemption.Code)

	user, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 5, user.Points)
}

func TestRedeem_InsufficientPointsLeavesStateUnchanged(t *testing.T) {
	store := repository.NewMemoryStore()
	userID := registerTestUser(t, store)
	trips := NewTripService(store.Trips(), nil)
	rewards := NewRewardsService(store.Redemptions(), nil, 8)
	ctx := context.Background()

	_, err := trips.RecordTrip(ctx, userID, "metro", "", "")
	require.NoError(t, err)

	_, err = rewards.Redeem(ctx, userID, "Day Pass", 11)
	require.True(t, apperrors.IsCode(err, "INSUFFICIENT_POINTS"))

	user, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 10, user.Points)

	history, err := rewards.History(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestRedeem_RejectsNonPositiveCost(t *testing.T) {
	store := repository.NewMemoryStore()
	userID := registerTestUser(t, store)
	rewards := NewRewardsService(store.Redemptions(), nil, 8)
	ctx := context.Background()

	_, err := rewards.Redeem(ctx, userID, "Nothing", 0)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = rewards.Redeem(ctx, userID, "Less than nothing", -5)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = rewards.Redeem(ctx, userID, "   ", 5)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestRedeem_CodesNeverCollide(t *testing.T) {
	store := repository.NewMemoryStore()
	userID := registerTestUser(t, store)
	trips := NewTripService(store.Trips(), nil)
	rewards := NewRewardsService(store.Redemptions(), nil, 8)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := trips.RecordTrip(ctx, userID, "metro", "", "")
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		redemption, err := rewards.Redeem(ctx, userID, "Sticker", 10)
		require.NoError(t, err)
		require.False(t, seen[redemption.Code], "code %s issued twice", redemption.Code)
		seen[redemption.Code] = true
	}
}

func TestRedeem_HistoryNewestFirst(t *testing.T) {
	store := repository.NewMemoryStore()
	userID := registerTestUser(t, store)
	trips := NewTripService(store.Trips(), nil)
	rewards := NewRewardsService(store.Redemptions(), nil, 6)
	ctx := context.Background()

	_, err := trips.RecordTrip(ctx, userID, "bike", "", "")
	require.NoError(t, err)

	first, err := rewards.Redeem(ctx, userID, "First", 5)
	require.NoError(t, err)
	second, err := rewards.Redeem(ctx, userID, "Second", 5)
	require.NoError(t, err)

	history, err := rewards.History(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, second.ID, history[0].ID)
	require.Equal(t, first.ID, history[1].ID)
}

// Scenario from the product walkthrough: one bus trip funds an ice cream,
// and the balance cannot go below zero afterwards.
func TestScenario_BusTripThenIceCream(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()

	authSvc := NewAuthService(testConfig(), store.Users(), nil)
	user, _, _, err := authSvc.Register(ctx, RegisterInput{
		Name:            "Ana",
		Email:           "a@x.com",
		NationalID:      "12345678901",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	require.NoError(t, err)

	trips := NewTripService(store.Trips(), nil)
	trip, err := trips.RecordTrip(ctx, user.ID, "bus", "", "")
	require.NoError(t, err)
	require.Equal(t, 12, trip.PointsEarned)

	rewards := NewRewardsService(store.Redemptions(), nil, 8)
	redemption, err := rewards.Redeem(ctx, user.ID, "Ice Cream", 12)
	require.NoError(t, err)
	require.Regexp(t, codePattern, redemption.Code)

	current, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 0, current.Points)

	_, err = rewards.Redeem(ctx, user.ID, "Anything", 1)
	require.True(t, apperrors.IsCode(err, "INSUFFICIENT_POINTS"))
}
