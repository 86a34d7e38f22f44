package domain

import "time"

// User is the domain model for a rider account. Points holds the
// authoritative balance and is only mutated through ledger operations.
type User struct {
	ID           int64
	Name         string
	Email        string
	NationalID   string
	PasswordHash string
	Points       int
	CreatedAt    time.Time
}
