package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pontu-app/rewards-service/internal/config"
	"github.com/pontu-app/rewards-service/internal/repository"
	apperrors "github.com/pontu-app/rewards-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            bcrypt.MinCost,
		},
		Rewards: config.RewardsConfig{CodeLength: 8},
	}
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Name:            "Ana",
		Email:           "a@x.com",
		NationalID:      "12345678901",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestRegister_NewUserStartsAtZero(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAuthService(testConfig(), store.Users(), nil)

	user, token, exp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, 0, user.Points)
	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, "12345678901", user.NationalID)
	require.NotEmpty(t, token)
	require.False(t, exp.IsZero())
}

func TestRegister_MissingFields(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAuthService(testConfig(), store.Users(), nil)

	input := validRegistration()
	input.Name = ""
	input.Password = ""
	input.ConfirmPassword = ""

	_, _, _, err := svc.Register(context.Background(), input)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	domainErr := apperrors.ToDomainError(err)
	require.Contains(t, domainErr.Details, "name")
	require.Contains(t, domainErr.Details, "password")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAuthService(testConfig(), store.Users(), nil)

	input := validRegistration()
	input.ConfirmPassword = "other"

	_, _, _, err := svc.Register(context.Background(), input)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestRegister_NationalIDFormats(t *testing.T) {
	cases := []struct {
		name  string
		input string
		valid bool
	}{
		{"bare digits", "12345678901", true},
		{"formatted", "123.456.789-01", true},
		{"with spaces", "123 456 789 01", true},
		{"too short", "1234567890", false},
		{"too long", "123456789012", false},
		{"letters", "12345abc901", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			normalized, ok := NormalizeNationalID(tc.input)
			require.Equal(t, tc.valid, ok)
			if tc.valid {
				require.Equal(t, "12345678901", normalized)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAuthService(testConfig(), store.Users(), nil)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	input := validRegistration()
	input.NationalID = "98765432109"
	_, _, _, err = svc.Register(ctx, input)
	require.True(t, apperrors.IsCode(err, "DUPLICATE"))
}

func TestRegister_DuplicateNationalID(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAuthService(testConfig(), store.Users(), nil)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	input := validRegistration()
	input.Email = "b@x.com"
	_, _, _, err = svc.Register(ctx, input)
	require.True(t, apperrors.IsCode(err, "DUPLICATE"))
}

func TestLogin_Success(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAuthService(testConfig(), store.Users(), nil)
	ctx := context.Background()

	registered, _, _, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)
}

func TestLogin_WrongPasswordAndUnknownEmailFailAlike(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAuthService(testConfig(), store.Users(), nil)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, _, _, wrongPass := svc.Login(ctx, "a@x.com", "nope")
	_, _, _, unknownEmail := svc.Login(ctx, "ghost@x.com", "secret")

	require.True(t, apperrors.IsCode(wrongPass, "INVALID_CREDENTIALS"))
	require.True(t, apperrors.IsCode(unknownEmail, "INVALID_CREDENTIALS"))
	require.Equal(t, wrongPass.Error(), unknownEmail.Error())
}
