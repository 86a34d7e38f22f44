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

// FavoritesHandler exposes favorite-route endpoints.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favoriteService *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favoriteService}
}

// AddFavorite handles POST /favorites.
func (h *FavoritesHandler) AddFavorite(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AddFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	favorite, err := h.favorites.Add(c.UserContext(), user.ID, req.RouteName, req.Origin, req.Destination)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": favoriteView(favorite)})
}

// ListFavorites handles GET /favorites.
func (h *FavoritesHandler) ListFavorites(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	favorites, err := h.favorites.List(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	items := make([]dto.FavoriteView, 0, len(favorites))
	for i := range favorites {
		items = append(items, favoriteView(&favorites[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// RemoveFavorite handles DELETE /favorites/:id.
func (h *FavoritesHandler) RemoveFavorite(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	favoriteID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid favorite id", nil)
	}
	if err := h.favorites.Remove(c.UserContext(), user.ID, favoriteID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func favoriteView(favorite *domain.Favorite) dto.FavoriteView {
	return dto.FavoriteView{
		ID:          favorite.ID,
		RouteName:   favorite.RouteName,
		Origin:      favorite.Origin,
		Destination: favorite.Destination,
	}
}
