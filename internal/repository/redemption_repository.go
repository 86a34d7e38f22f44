package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pontu-app/rewards-service/internal/domain"
)

// RedemptionRepository encapsulates redemption persistence.
type RedemptionRepository interface {
	// CreateWithDebit debits the owner's balance and inserts the redemption
	// as one transaction. The debit is conditional on a sufficient balance,
	// so the check happens inside the same transaction as the insert; a
	// short balance returns ErrInsufficientPoints with no state change.
	// A code collision returns ErrDuplicateCode, leaving the caller free to
	// retry with a fresh code.
	CreateWithDebit(ctx context.Context, redemption *domain.Redemption) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Redemption, error)
}

type redemptionRepository struct {
	pool *pgxpool.Pool
}

// NewRedemptionRepository instantiates repository.
func NewRedemptionRepository(pool *pgxpool.Pool) RedemptionRepository {
	return &redemptionRepository{pool: pool}
}

func (r *redemptionRepository) CreateWithDebit(ctx context.Context, redemption *domain.Redemption) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const debit = `UPDATE users SET points = points - $1 WHERE id = $2 AND points >= $1`
	cmd, err := tx.Exec(ctx, debit, redemption.PointsSpent, redemption.UserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInsufficientPoints
	}

	const insert = `
        INSERT INTO redemptions (user_id, benefit, points_spent, code)
        VALUES ($1, $2, $3, $4)
        RETURNING id, redeemed_at`
	if err := tx.QueryRow(ctx, insert,
		redemption.UserID,
		redemption.Benefit,
		redemption.PointsSpent,
		redemption.Code,
	).Scan(&redemption.ID, &redemption.RedeemedAt); err != nil {
		return mapUniqueViolation(err)
	}

	return tx.Commit(ctx)
}

func (r *redemptionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Redemption, error) {
	const query = `
        SELECT id, user_id, benefit, points_spent, code, redeemed_at
        FROM redemptions WHERE user_id=$1
        ORDER BY redeemed_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Redemption
	for rows.Next() {
		var redemption domain.Redemption
		if err := rows.Scan(
			&redemption.ID,
			&redemption.UserID,
			&redemption.Benefit,
			&redemption.PointsSpent,
			&redemption.Code,
			&redemption.RedeemedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, redemption)
	}
	return result, rows.Err()
}
