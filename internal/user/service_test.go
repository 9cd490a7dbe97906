package user

import (
	"testing"

	"github.com/charadle/charadle-backend/internal/platform/config"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserTest(t *testing.T) {
	t.Helper()
	database.OpenTestDB(t, &User{})

	prev := config.Cfg
	config.Cfg = &config.Config{AppBaseURL: "http://localhost:8080"}
	t.Cleanup(func() { config.Cfg = prev })
}

func TestCreateHashesPasswordAndDefaultsAvatar(t *testing.T) {
	setupUserTest(t)

	safe, err := Create(CreateUserInput{
		Email:    "Moana@Example.com",
		Username: "moana",
		Password: "wayfinder123",
	})
	require.NoError(t, err)
	assert.Equal(t, "moana@example.com", safe.Email, "email is normalized")
	assert.Contains(t, safe.AvatarIconURL, "dicebear")
	assert.False(t, safe.IsEmailVerified)

	stored, err := FindByEmail("moana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "wayfinder123", stored.Password)
	assert.True(t, CheckPassword(stored, "wayfinder123"))
	assert.False(t, CheckPassword(stored, "other"))
}

func TestCreateRejectsDuplicates(t *testing.T) {
	setupUserTest(t)

	_, err := Create(CreateUserInput{Email: "a@example.com", Username: "alpha", Password: "password1"})
	require.NoError(t, err)

	_, err = Create(CreateUserInput{Email: "a@example.com", Username: "other", Password: "password1"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	_, err = Create(CreateUserInput{Email: "b@example.com", Username: "alpha", Password: "password1"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestSeedAdminIsCreateOnly(t *testing.T) {
	setupUserTest(t)

	require.NoError(t, SeedAdmin("admin@example.com", "first-password"))
	admin, err := FindByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.True(t, admin.IsEmailVerified)

	// A changed config password must not overwrite the live account.
	require.NoError(t, SeedAdmin("admin@example.com", "rotated-password"))
	admin, err = FindByEmail("admin@example.com")
	require.NoError(t, err)
	assert.True(t, CheckPassword(admin, "first-password"))
	assert.False(t, CheckPassword(admin, "rotated-password"))
}

func TestSanitizeStripsSecrets(t *testing.T) {
	tok := "verify-token"
	u := User{
		ID:               7,
		Email:            "x@example.com",
		Username:         "x",
		Password:         "hash",
		EmailVerifyToken: &tok,
		RefreshTokenHash: &tok,
	}
	safe := u.Sanitize()
	assert.Equal(t, uint(7), safe.ID)
	assert.Equal(t, "x@example.com", safe.Email)
}
