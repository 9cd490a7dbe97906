package auth

import (
	"time"

	"github.com/charadle/charadle-backend/internal/platform/config"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/platform/mailer"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/token"
	"github.com/google/uuid"
)

// LoginResult is the payload returned by the login and refresh flows.
type LoginResult struct {
	Token          string        `json:"token"`
	TokenExpiresAt time.Time     `json:"tokenExpiresAt"`
	RefreshToken   string        `json:"refreshToken"`
	User           user.SafeUser `json:"user"`
}

// Login authenticates a user by email and password, issuing an access token
// and a fresh rotating refresh token. Wrong email and wrong password are
// indistinguishable to the caller.
func Login(email, password string) (*LoginResult, error) {
	u, err := user.FindByEmail(email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if !user.CheckPassword(u, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return issueTokens(u)
}

// LoginAdmin is Login restricted to admin accounts.
func LoginAdmin(email, password string) (*LoginResult, error) {
	u, err := user.FindByEmail(email)
	if err != nil || u.Role != user.RoleAdmin {
		return nil, apperr.Unauthorized("access denied")
	}
	if !user.CheckPassword(u, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return issueTokens(u)
}

// Refresh rotates a valid refresh token into a new token pair. The previous
// refresh token is invalidated in the same step.
func Refresh(rawRefreshToken string) (*LoginResult, error) {
	if rawRefreshToken == "" {
		return nil, apperr.Unauthorized("missing refresh token")
	}
	hash := token.HashRefreshToken(rawRefreshToken)

	var u user.User
	err := database.DB.Where("refresh_token_hash = ?", hash).First(&u).Error
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	if u.RefreshTokenExpiresAt == nil || u.RefreshTokenExpiresAt.Before(time.Now()) {
		return nil, apperr.Unauthorized("refresh token expired")
	}
	return issueTokens(&u)
}

// Logout invalidates the user's refresh token.
func Logout(userID uint) error {
	return database.DB.Model(&user.User{}).Where("id = ?", userID).
		Updates(map[string]any{
			"refresh_token_hash":       nil,
			"refresh_token_expires_at": nil,
		}).Error
}

// VerifyEmail confirms an account from the emailed token.
func VerifyEmail(email, verifyToken string) error {
	u, err := user.FindByEmail(email)
	if err != nil {
		return err
	}
	if u.IsEmailVerified {
		return nil
	}
	if u.EmailVerifyToken == nil || *u.EmailVerifyToken != verifyToken {
		return apperr.BadRequest("invalid verification token")
	}
	if u.EmailVerifyExpiresAt != nil && u.EmailVerifyExpiresAt.Before(time.Now()) {
		return apperr.BadRequest("verification token expired")
	}
	return database.DB.Model(&user.User{}).Where("id = ?", u.ID).
		Updates(map[string]any{
			"is_email_verified":       true,
			"email_verify_token":      nil,
			"email_verify_expires_at": nil,
		}).Error
}

// ResendVerification issues a new verification token and sends it.
func ResendVerification(email string) error {
	u, err := user.FindByEmail(email)
	if err != nil {
		return err
	}
	if u.IsEmailVerified {
		return apperr.BadRequest("email is already verified")
	}

	verifyToken := uuid.NewString()
	expiry := time.Now().Add(24 * time.Hour)
	err = database.DB.Model(&user.User{}).Where("id = ?", u.ID).
		Updates(map[string]any{
			"email_verify_token":      verifyToken,
			"email_verify_expires_at": expiry,
		}).Error
	if err != nil {
		return err
	}
	return mailer.SendEmailVerification(u.Email, verifyToken)
}

// issueTokens signs an access token and rotates the refresh token.
func issueTokens(u *user.User) (*LoginResult, error) {
	accessToken, expiresAt, err := token.SignAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	rawRefresh, refreshHash, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	refreshExpiry := time.Now().Add(config.Cfg.Auth.RefreshTokenTTL)

	err = database.DB.Model(&user.User{}).Where("id = ?", u.ID).
		Updates(map[string]any{
			"refresh_token_hash":       refreshHash,
			"refresh_token_expires_at": refreshExpiry,
		}).Error
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:          accessToken,
		TokenExpiresAt: expiresAt,
		RefreshToken:   rawRefresh,
		User:           u.Sanitize(),
	}, nil
}
