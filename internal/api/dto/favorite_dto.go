package dto

// AddFavoriteRequest payload for saving a route.
type AddFavoriteRequest struct {
	RouteName   string `json:"route_name" validate:"required"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// FavoriteView is a saved route shortcut.
type FavoriteView struct {
	ID          int64  `json:"id"`
	RouteName   string `json:"route_name"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}
