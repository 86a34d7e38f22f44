package domain

import "time"

// Redemption records an exchange of points for a benefit. Code is unique
// across all redemptions.
type Redemption struct {
	ID          int64
	UserID      int64
	Benefit     string
	PointsSpent int
	Code        string
	RedeemedAt  time.Time
}
