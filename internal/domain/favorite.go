package domain

// Favorite is a user-saved route shortcut.
type Favorite struct {
	ID          int64
	UserID      int64
	RouteName   string
	Origin      string
	Destination string
}
