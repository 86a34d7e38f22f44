package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pontu-app/rewards-service/internal/api/dto"
	"github.com/pontu-app/rewards-service/internal/auth"
	"github.com/pontu-app/rewards-service/internal/service"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

// FeedbackHandler exposes crowding-report endpoints.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedbackService}
}

// SubmitFeedback handles POST /feedback.
func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	report, err := h.feedback.Submit(c.UserContext(), user.ID, req.Line, req.CrowdingLevel)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":          report.ID,
			"line":        report.Line,
			"crowding":    report.Crowding,
			"reported_at": report.ReportedAt,
		},
	})
}

// FeedbackStats handles GET /feedback/stats.
func (h *FeedbackHandler) FeedbackStats(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	stats, err := h.feedback.Stats(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
