package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pontu-app/rewards-service/internal/api/http/handlers"
	"github.com/pontu-app/rewards-service/internal/auth"
	"github.com/pontu-app/rewards-service/internal/config"
	"github.com/pontu-app/rewards-service/internal/events"
	"github.com/pontu-app/rewards-service/internal/observability"
	"github.com/pontu-app/rewards-service/internal/persistence"
	"github.com/pontu-app/rewards-service/internal/repository"
	"github.com/pontu-app/rewards-service/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            bcrypt.MinCost,
		},
		Rewards: config.RewardsConfig{CodeLength: 8},
	}

	store := repository.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg, store.Users(), dispatcher)
	tripService := service.NewTripService(store.Trips(), dispatcher)
	rewardsService := service.NewRewardsService(store.Redemptions(), dispatcher, cfg.Rewards.CodeLength)
	favoriteService := service.NewFavoriteService(store.Favorites())
	feedbackService := service.NewFeedbackService(store.Feedback(), nil, 0)

	logger := zap.NewNop()
	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Users:          handlers.NewUsersHandler(authService),
		Trips:          handlers.NewTripsHandler(tripService),
		Redemptions:    handlers.NewRedemptionsHandler(rewardsService),
		Favorites:      handlers.NewFavoritesHandler(favoriteService),
		Feedback:       handlers.NewFeedbackHandler(feedbackService),
		Routes:         handlers.NewRoutesHandler(),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), store.Users()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	parsed := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp.StatusCode, parsed
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	inner, ok := body["data"].(map[string]any)
	require.True(t, ok, "missing data envelope: %v", body)
	return inner
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	inner, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error envelope: %v", body)
	code, _ := inner["code"].(string)
	return code
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, _ := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]any{
		"name":             "Ana",
		"email":            "a@x.com",
		"national_id":      "123.456.789-01",
		"password":         "secret",
		"confirm_password": "secret",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "a@x.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, status)

	authData, ok := data(t, body)["auth"].(map[string]any)
	require.True(t, ok)
	token, _ := authData["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAPI_TripAndRedemptionFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	status, body := doJSON(t, app, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), data(t, body)["points"])

	status, body = doJSON(t, app, http.MethodPost, "/trips", token, map[string]any{
		"modal":       "bus",
		"origin":      "Home",
		"destination": "Downtown",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, float64(12), data(t, body)["points_earned"])

	status, body = doJSON(t, app, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(12), data(t, body)["points"])

	status, body = doJSON(t, app, http.MethodPost, "/redemptions", token, map[string]any{
		"benefit":     "Ice Cream",
		"points_cost": 12,
	})
	require.Equal(t, http.StatusCreated, status)
	code, _ := data(t, body)["code"].(string)
	require.Regexp(t, regexp.MustCompile(`^PONTU-[A-Z0-9]{6,8}$`), code)

	status, body = doJSON(t, app, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), data(t, body)["points"])

	status, body = doJSON(t, app, http.MethodPost, "/redemptions", token, map[string]any{
		"benefit":     "Anything",
		"points_cost": 1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Equal(t, "INSUFFICIENT_POINTS", errorCode(t, body))
}

func TestAPI_DuplicateRegistration(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app)

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]any{
		"name":             "Other Ana",
		"email":            "a@x.com",
		"national_id":      "98765432109",
		"password":         "secret",
		"confirm_password": "secret",
	})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "DUPLICATE", errorCode(t, body))
}

func TestAPI_LoginFailuresDoNotLeakAccountExistence(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app)

	status, wrongPass := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "a@x.com",
		"password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	status, unknown := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "ghost@x.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, errorCode(t, wrongPass), errorCode(t, unknown))
	require.Equal(t, wrongPass["error"], unknown["error"])
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/me", "/trips", "/redemptions", "/favorites", "/feedback/stats"} {
		status, body := doJSON(t, app, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, status, "path %s", path)
		require.Equal(t, "UNAUTHORIZED", errorCode(t, body))
	}
}

func TestAPI_FavoritesLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	status, body := doJSON(t, app, http.MethodPost, "/favorites", token, map[string]any{
		"route_name":  "Commute",
		"origin":      "Home",
		"destination": "Office",
	})
	require.Equal(t, http.StatusCreated, status)
	id := data(t, body)["id"].(float64)

	status, body = doJSON(t, app, http.MethodGet, "/favorites", token, nil)
	require.Equal(t, http.StatusOK, status)
	items, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/favorites/%d", int64(id)), token, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, body = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/favorites/%d", int64(id)), token, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestAPI_FeedbackStats(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	status, _ := doJSON(t, app, http.MethodPost, "/feedback", token, map[string]any{
		"line":           "Line 4",
		"crowding_level": "full",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodGet, "/feedback/stats", token, nil)
	require.Equal(t, http.StatusOK, status)
	stats := data(t, body)
	require.Equal(t, float64(1), stats["total"])
	require.Equal(t, float64(1), stats["last_7_days"])
}

func TestAPI_RoutePlanningStubs(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	for _, path := range []string{"/routes", "/routes/plan"} {
		status, body := doJSON(t, app, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusNotImplemented, status, "path %s", path)
		require.Equal(t, "NOT_IMPLEMENTED", errorCode(t, body))
	}
}

func TestAPI_ValidationDetailsUseJSONFieldNames(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Ana",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_FAILED", errorCode(t, body))

	errObj := body["error"].(map[string]any)
	details, ok := errObj["details"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, details, "email")
	require.Contains(t, details, "national_id")
}
