package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pontu-app/rewards-service/internal/domain"
)

// UserRepository defines persistence access for rider accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, national_id, password_hash, points)
        VALUES ($1, $2, $3, $4, 0)
        RETURNING id, points, created_at`

	err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.NationalID,
		user.PasswordHash,
	).Scan(&user.ID, &user.Points, &user.CreatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id, name, email, national_id, password_hash, points, created_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, national_id, password_hash, points, created_at
        FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.NationalID,
		&user.PasswordHash,
		&user.Points,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
