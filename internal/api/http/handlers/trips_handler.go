package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pontu-app/rewards-service/internal/api/dto"
	"github.com/pontu-app/rewards-service/internal/auth"
	"github.com/pontu-app/rewards-service/internal/domain"
	"github.com/pontu-app/rewards-service/internal/service"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

// TripsHandler exposes trip recording and history endpoints.
type TripsHandler struct {
	trips *service.TripService
}

// NewTripsHandler constructs handler.
func NewTripsHandler(tripService *service.TripService) *TripsHandler {
	return &TripsHandler{trips: tripService}
}

// RecordTrip handles POST /trips.
func (h *TripsHandler) RecordTrip(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.RecordTripRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	trip, err := h.trips.RecordTrip(c.UserContext(), user.ID, req.Modal, req.Origin, req.Destination)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": tripView(trip)})
}

// ListTrips handles GET /trips.
func (h *TripsHandler) ListTrips(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	limit := parseLimit(c.Query("limit"), 10)
	trips, err := h.trips.History(c.UserContext(), user.ID, limit)
	if err != nil {
		return err
	}
	items := make([]dto.TripView, 0, len(trips))
	for i := range trips {
		items = append(items, tripView(&trips[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func tripView(trip *domain.Trip) dto.TripView {
	return dto.TripView{
		ID:           trip.ID,
		Modal:        string(trip.Modal),
		Origin:       trip.Origin,
		Destination:  trip.Destination,
		PointsEarned: trip.PointsEarned,
		TakenAt:      trip.TakenAt,
	}
}

func parseLimit(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
