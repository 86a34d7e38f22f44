package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pontu-app/rewards-service/internal/domain"
)

// FeedbackRepository encapsulates crowding-report persistence.
type FeedbackRepository interface {
	Create(ctx context.Context, report *domain.CrowdingReport) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountByUserSince(ctx context.Context, userID int64, since time.Time) (int64, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, report *domain.CrowdingReport) error {
	const query = `
        INSERT INTO crowding_reports (user_id, line, crowding)
        VALUES ($1, $2, $3)
        RETURNING id, reported_at`
	return r.pool.QueryRow(ctx, query,
		report.UserID,
		report.Line,
		report.Crowding,
	).Scan(&report.ID, &report.ReportedAt)
}

func (r *feedbackRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM crowding_reports WHERE user_id=$1`
	var count int64
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *feedbackRepository) CountByUserSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM crowding_reports WHERE user_id=$1 AND reported_at >= $2`
	var count int64
	err := r.pool.QueryRow(ctx, query, userID, since).Scan(&count)
	return count, err
}
