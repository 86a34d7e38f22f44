package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pontu-app/rewards-service/internal/api/http/handlers"
	"github.com/pontu-app/rewards-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Trips          *handlers.TripsHandler
	Redemptions    *handlers.RedemptionsHandler
	Favorites      *handlers.FavoritesHandler
	Feedback       *handlers.FeedbackHandler
	Routes         *handlers.RoutesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Users.Me)

	protected.Post("/trips", cfg.Trips.RecordTrip)
	protected.Get("/trips", cfg.Trips.ListTrips)

	protected.Post("/redemptions", cfg.Redemptions.Redeem)
	protected.Get("/redemptions", cfg.Redemptions.ListRedemptions)

	protected.Post("/favorites", cfg.Favorites.AddFavorite)
	protected.Get("/favorites", cfg.Favorites.ListFavorites)
	protected.Delete("/favorites/:id", cfg.Favorites.RemoveFavorite)

	protected.Post("/feedback", cfg.Feedback.SubmitFeedback)
	protected.Get("/feedback/stats", cfg.Feedback.FeedbackStats)

	protected.Get("/routes", cfg.Routes.ConsultRoutes)
	protected.Get("/routes/plan", cfg.Routes.PlanRoute)
}
