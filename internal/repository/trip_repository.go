package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pontu-app/rewards-service/internal/domain"
)

// TripRepository encapsulates trip persistence.
type TripRepository interface {
	// CreateWithCredit inserts the trip and credits the owner's balance as
	// one transaction. Either both writes land or neither does.
	CreateWithCredit(ctx context.Context, trip *domain.Trip) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Trip, error)
}

type tripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository instantiates repository.
func NewTripRepository(pool *pgxpool.Pool) TripRepository {
	return &tripRepository{pool: pool}
}

func (r *tripRepository) CreateWithCredit(ctx context.Context, trip *domain.Trip) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insert = `
        INSERT INTO trips (user_id, modal, origin, destination, points_earned)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, taken_at`
	if err := tx.QueryRow(ctx, insert,
		trip.UserID,
		trip.Modal,
		trip.Origin,
		trip.Destination,
		trip.PointsEarned,
	).Scan(&trip.ID, &trip.TakenAt); err != nil {
		return err
	}

	const credit = `UPDATE users SET points = points + $1 WHERE id = $2`
	cmd, err := tx.Exec(ctx, credit, trip.PointsEarned, trip.UserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *tripRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Trip, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
        SELECT id, user_id, modal, origin, destination, points_earned, taken_at
        FROM trips WHERE user_id=$1
        ORDER BY taken_at DESC, id DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Trip
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.UserID,
			&trip.Modal,
			&trip.Origin,
			&trip.Destination,
			&trip.PointsEarned,
			&trip.TakenAt,
		); err != nil {
			return nil, err
		}
		result = append(result, trip)
	}
	return result, rows.Err()
}
