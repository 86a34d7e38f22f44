package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pontu-app/rewards-service/internal/repository"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

func TestSubmitFeedback_RequiresLineAndLevel(t *testing.T) {
	store := repository.NewMemoryStore()
	userID := registerTestUser(t, store)
	svc := NewFeedbackService(store.Feedback(), nil, 0)
	ctx := context.Background()

	_, err := svc.Submit(ctx, userID, "", "full")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = svc.Submit(ctx, userID, "Line 4", "")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	report, err := svc.Submit(ctx, userID, "Line 4", "full")
	require.NoError(t, err)
	require.NotZero(t, report.ID)
	require.False(t, report.ReportedAt.IsZero())
}

func TestFeedbackStats_SevenDayWindow(t *testing.T) {
	store := repository.NewMemoryStore()
	userID := registerTestUser(t, store)
	svc := NewFeedbackService(store.Feedback(), nil, 0)
	ctx := context.Background()

	now := time.Now()
	store.SeedReport(userID, "Line 1", "empty", now.AddDate(0, 0, -30))
	store.SeedReport(userID, "Line 2", "moderate", now.AddDate(0, 0, -8))
	store.SeedReport(userID, "Line 3", "full", now.AddDate(0, 0, -3))

	_, err := svc.Submit(ctx, userID, "Line 4", "full")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(4), stats.Total)
	require.Equal(t, int64(2), stats.LastSeven)
}

func TestFeedbackStats_ScopedToUser(t *testing.T) {
	store := repository.NewMemoryStore()
	userID := registerTestUser(t, store)
	svc := NewFeedbackService(store.Feedback(), nil, 0)
	ctx := context.Background()

	store.SeedReport(userID+1000, "Line 9", "full", time.Now())

	stats, err := svc.Stats(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.Total)
	require.Equal(t, int64(0), stats.LastSeven)
}
