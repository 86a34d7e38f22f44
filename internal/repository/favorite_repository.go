package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pontu-app/rewards-service/internal/domain"
)

// FavoriteRepository encapsulates favorite-route persistence.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
	// Delete removes a favorite scoped to its owner.
	Delete(ctx context.Context, userID, favoriteID int64) error
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository instantiates repository.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	const query = `
        INSERT INTO favorites (user_id, route_name, origin, destination)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		favorite.UserID,
		favorite.RouteName,
		favorite.Origin,
		favorite.Destination,
	).Scan(&favorite.ID)
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	const query = `
        SELECT id, user_id, route_name, origin, destination
        FROM favorites WHERE user_id=$1
        ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Favorite
	for rows.Next() {
		var favorite domain.Favorite
		if err := rows.Scan(
			&favorite.ID,
			&favorite.UserID,
			&favorite.RouteName,
			&favorite.Origin,
			&favorite.Destination,
		); err != nil {
			return nil, err
		}
		result = append(result, favorite)
	}
	return result, rows.Err()
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, favoriteID int64) error {
	const query = `DELETE FROM favorites WHERE id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, favoriteID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
