package handlers

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

// RoutesHandler holds the route consultation and planning endpoints.
// Real-time routing is out of scope; both are explicit stubs.
type RoutesHandler struct{}

// NewRoutesHandler constructs handler.
func NewRoutesHandler() *RoutesHandler {
	return &RoutesHandler{}
}

// ConsultRoutes handles GET /routes.
func (h *RoutesHandler) ConsultRoutes(_ *fiber.Ctx) error {
	return apperrors.NewNotImplemented("route consultation not yet available")
}

// PlanRoute handles GET /routes/plan.
func (h *RoutesHandler) PlanRoute(_ *fiber.Ctx) error {
	return apperrors.NewNotImplemented("route planning not yet available")
}
