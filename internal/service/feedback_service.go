package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pontu-app/rewards-service/internal/domain"
	"github.com/pontu-app/rewards-service/internal/repository"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

const statsWindow = 7 * 24 * time.Hour

// FeedbackService records crowding reports and aggregates per-user stats.
type FeedbackService struct {
	feedback repository.FeedbackRepository
	cache    *redis.Client
	cacheTTL time.Duration
	now      func() time.Time
}

// NewFeedbackService constructs the service. cache may be nil, in which case
// stats are always counted directly.
func NewFeedbackService(feedback repository.FeedbackRepository, cache *redis.Client, cacheTTL time.Duration) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Submit appends a crowding report for a line.
func (s *FeedbackService) Submit(ctx context.Context, userID int64, line, crowding string) (*domain.CrowdingReport, error) {
	line = strings.TrimSpace(line)
	crowding = strings.TrimSpace(crowding)
	if line == "" || crowding == "" {
		return nil, apperrors.NewValidationError("line and crowding_level required", nil)
	}

	report := &domain.CrowdingReport{
		UserID:   userID,
		Line:     line,
		Crowding: crowding,
	}
	if err := s.feedback.Create(ctx, report); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.invalidateStats(ctx, userID)
	return report, nil
}

// Stats returns the user's total report count and the count over the last
// seven days, window anchored at query time. Results are cached briefly in
// Redis; cache trouble falls back to direct counts.
func (s *FeedbackService) Stats(ctx context.Context, userID int64) (*domain.FeedbackStats, error) {
	if cached := s.cachedStats(ctx, userID); cached != nil {
		return cached, nil
	}

	total, err := s.feedback.CountByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	recent, err := s.feedback.CountByUserSince(ctx, userID, s.now().Add(-statsWindow))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	stats := &domain.FeedbackStats{Total: total, LastSeven: recent}
	s.storeStats(ctx, userID, stats)
	return stats, nil
}

func statsKey(userID int64) string {
	return fmt.Sprintf("feedback:stats:%d", userID)
}

func (s *FeedbackService) cachedStats(ctx context.Context, userID int64) *domain.FeedbackStats {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var stats domain.FeedbackStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *FeedbackService) storeStats(ctx context.Context, userID int64, stats *domain.FeedbackStats) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, statsKey(userID), raw, s.cacheTTL).Err()
}

func (s *FeedbackService) invalidateStats(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, statsKey(userID)).Err()
}
