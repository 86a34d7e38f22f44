package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pontu-app/rewards-service/internal/domain"
	"github.com/pontu-app/rewards-service/internal/repository"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

// FavoriteService manages a user's saved route shortcuts.
type FavoriteService struct {
	favorites repository.FavoriteRepository
}

// NewFavoriteService constructs the service.
func NewFavoriteService(favorites repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// Add saves a route for the user.
func (s *FavoriteService) Add(ctx context.Context, userID int64, routeName, origin, destination string) (*domain.Favorite, error) {
	routeName = strings.TrimSpace(routeName)
	if routeName == "" {
		return nil, apperrors.NewValidationError("route_name required", nil)
	}

	favorite := &domain.Favorite{
		UserID:      userID,
		RouteName:   routeName,
		Origin:      strings.TrimSpace(origin),
		Destination: strings.TrimSpace(destination),
	}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return favorite, nil
}

// List returns the user's favorites.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return favorites, nil
}

// Remove deletes a favorite owned by the user.
func (s *FavoriteService) Remove(ctx context.Context, userID, favoriteID int64) error {
	if err := s.favorites.Delete(ctx, userID, favoriteID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("favorite", nil)
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}
