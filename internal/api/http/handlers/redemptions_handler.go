package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pontu-app/rewards-service/internal/api/dto"
	"github.com/pontu-app/rewards-service/internal/auth"
	"github.com/pontu-app/rewards-service/internal/domain"
	"github.com/pontu-app/rewards-service/internal/service"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

// RedemptionsHandler exposes redemption endpoints.
type RedemptionsHandler struct {
	rewards *service.RewardsService
}

// NewRedemptionsHandler constructs handler.
func NewRedemptionsHandler(rewardsService *service.RewardsService) *RedemptionsHandler {
	return &RedemptionsHandler{rewards: rewardsService}
}

// Redeem handles POST /redemptions.
func (h *RedemptionsHandler) Redeem(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	redemption, err := h.rewards.Redeem(c.UserContext(), user.ID, req.Benefit, req.PointsCost)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": redemptionView(redemption)})
}

// ListRedemptions handles GET /redemptions.
func (h *RedemptionsHandler) ListRedemptions(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	redemptions, err := h.rewards.History(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	items := make([]dto.RedemptionView, 0, len(redemptions))
	for i := range redemptions {
		items = append(items, redemptionView(&redemptions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func redemptionView(redemption *domain.Redemption) dto.RedemptionView {
	return dto.RedemptionView{
		ID:          redemption.ID,
		Benefit:     redemption.Benefit,
		PointsSpent: redemption.PointsSpent,
		Code:        redemption.Code,
		RedeemedAt:  redemption.RedeemedAt,
	}
}
