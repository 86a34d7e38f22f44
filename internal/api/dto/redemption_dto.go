package dto

import "time"

// RedeemRequest payload for exchanging points.
type RedeemRequest struct {
	Benefit    string `json:"benefit" validate:"required"`
	PointsCost int    `json:"points_cost" validate:"required,gt=0"`
}

// RedemptionView is a single redemption in history listings.
type RedemptionView struct {
	ID          int64     `json:"id"`
	Benefit     string    `json:"benefit"`
	PointsSpent int       `json:"points_spent"`
	Code        string    `json:"code"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}
