package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by repositories. Services translate these into
// the API error model.
var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateNationalID = errors.New("national id already registered")
	ErrDuplicateCode       = errors.New("redemption code already exists")
	ErrInsufficientPoints  = errors.New("insufficient points")
)

const uniqueViolationCode = "23505"

// mapUniqueViolation translates a Postgres unique-constraint error into the
// matching sentinel, or returns the error unchanged.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return ErrDuplicateEmail
	case "users_national_id_key":
		return ErrDuplicateNationalID
	case "redemptions_code_key":
		return ErrDuplicateCode
	}
	return err
}
