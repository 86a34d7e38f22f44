package dto

// SubmitFeedbackRequest payload for crowding reports.
type SubmitFeedbackRequest struct {
	Line          string `json:"line" validate:"required"`
	CrowdingLevel string `json:"crowding_level" validate:"required"`
}
