package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5"

	"github.com/pontu-app/rewards-service/internal/auth"
	"github.com/pontu-app/rewards-service/internal/config"
	"github.com/pontu-app/rewards-service/internal/domain"
	"github.com/pontu-app/rewards-service/internal/events"
	"github.com/pontu-app/rewards-service/internal/repository"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

const nationalIDLength = 11

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	timingHash string
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name            string
	Email           string
	NationalID      string
	Password        string
	ConfirmPassword string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	// Hashed once up front so the unknown-email login path can burn the
	// same bcrypt cost as a real comparison.
	timingHash, _ := auth.HashPassword("timing-equalizer", cfg.Auth.BcryptCost)
	return &AuthService{
		users:      users,
		dispatcher: dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		timingHash: timingHash,
	}
}

// Register creates a new rider account with a zero balance and returns the
// user together with a signed session token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	missing := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		missing["name"] = "required"
	}
	if strings.TrimSpace(input.Email) == "" {
		missing["email"] = "required"
	}
	if strings.TrimSpace(input.NationalID) == "" {
		missing["national_id"] = "required"
	}
	if input.Password == "" {
		missing["password"] = "required"
	}
	if len(missing) > 0 {
		return nil, "", time.Time{}, apperrors.NewValidationError("missing required fields", missing)
	}
	if input.Password != input.ConfirmPassword {
		return nil, "", time.Time{}, apperrors.NewValidationError("passwords do not match", nil)
	}

	nationalID, ok := NormalizeNationalID(input.NationalID)
	if !ok {
		return nil, "", time.Time{}, apperrors.NewValidationError("national id must contain exactly 11 digits", nil)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicate("email already registered", map[string]any{"field": "email"})
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		NationalID:   nationalID,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch err {
		case repository.ErrDuplicateEmail:
			return nil, "", time.Time{}, apperrors.NewDuplicate("email already registered", map[string]any{"field": "email"})
		case repository.ErrDuplicateNationalID:
			return nil, "", time.Time{}, apperrors.NewDuplicate("national id already registered", map[string]any{"field": "national_id"})
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:   events.EventUserRegistered,
		UserID: user.ID,
		Payload: events.UserRegisteredPayload{
			Name:  user.Name,
			Email: user.Email,
		},
	})
	return user, token, exp, nil
}

// Login authenticates a rider. Unknown email and wrong password fail
// identically, with a throwaway hash comparison on the unknown-email path so
// neither timing nor the error reveals whether the account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			_ = auth.ComparePassword(s.timingHash, password)
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// NormalizeNationalID strips common formatting punctuation and reports
// whether the remainder is exactly eleven digits.
func NormalizeNationalID(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '/' || r == ' ':
			// formatting noise, dropped before validation
		default:
			return "", false
		}
	}
	normalized := b.String()
	if len(normalized) != nationalIDLength {
		return "", false
	}
	return normalized, true
}
