package auth

import (
	"testing"
	"time"

	"github.com/charadle/charadle-backend/internal/platform/config"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) {
	t.Helper()
	database.OpenTestDB(t, &user.User{})

	prev := config.Cfg
	config.Cfg = &config.Config{
		Auth: config.AuthConfig{
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
			CookieName:      "access-token",
		},
		AppBaseURL: "http://localhost:8080",
	}
	t.Cleanup(func() { config.Cfg = prev })

	token.Configure("auth-test-secret", time.Hour)
}

func registerUser(t *testing.T, email, password string) {
	t.Helper()
	_, err := user.Create(user.CreateUserInput{
		Email:    email,
		Username: email[:len(email)-len("@example.com")],
		Password: password,
	})
	require.NoError(t, err)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	setupAuthTest(t)
	registerUser(t, "player@example.com", "hunter2hunter2")

	result, err := Login("player@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "player@example.com", result.User.Email)

	claims, err := token.ParseAccessToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, user.RoleUser, claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	setupAuthTest(t)
	registerUser(t, "player@example.com", "hunter2hunter2")

	_, err := Login("player@example.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	// Unknown email is indistinguishable from a wrong password.
	_, err = Login("ghost@example.com", "hunter2hunter2")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestLoginAdminRejectsRegularUser(t *testing.T) {
	setupAuthTest(t)
	registerUser(t, "player@example.com", "hunter2hunter2")

	_, err := LoginAdmin("player@example.com", "hunter2hunter2")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestRefreshRotatesToken(t *testing.T) {
	setupAuthTest(t)
	registerUser(t, "player@example.com", "hunter2hunter2")

	login, err := Login("player@example.com", "hunter2hunter2")
	require.NoError(t, err)

	refreshed, err := Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old refresh token died with the rotation.
	_, err = Refresh(login.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	// The new one works.
	_, err = Refresh(refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	setupAuthTest(t)
	registerUser(t, "player@example.com", "hunter2hunter2")

	login, err := Login("player@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.NoError(t, Logout(login.User.ID))

	_, err = Refresh(login.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestVerifyEmailFlow(t *testing.T) {
	setupAuthTest(t)
	registerUser(t, "player@example.com", "hunter2hunter2")

	u, err := user.FindByEmail("player@example.com")
	require.NoError(t, err)
	require.NotNil(t, u.EmailVerifyToken)
	assert.False(t, u.IsEmailVerified)

	require.Error(t, VerifyEmail("player@example.com", "not-the-token"))

	require.NoError(t, VerifyEmail("player@example.com", *u.EmailVerifyToken))

	u, err = user.FindByEmail("player@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsEmailVerified)
	assert.Nil(t, u.EmailVerifyToken)

	// Re-verifying a verified account is a no-op.
	require.NoError(t, VerifyEmail("player@example.com", "anything"))
}

func TestResendVerificationRotatesToken(t *testing.T) {
	setupAuthTest(t)
	registerUser(t, "player@example.com", "hunter2hunter2")

	before, err := user.FindByEmail("player@example.com")
	require.NoError(t, err)

	require.NoError(t, ResendVerification("player@example.com"))

	after, err := user.FindByEmail("player@example.com")
	require.NoError(t, err)
	require.NotNil(t, after.EmailVerifyToken)
	assert.NotEqual(t, *before.EmailVerifyToken, *after.EmailVerifyToken)

	// Verified accounts cannot request another mail.
	require.NoError(t, VerifyEmail("player@example.com", *after.EmailVerifyToken))
	err = ResendVerification("player@example.com")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}
