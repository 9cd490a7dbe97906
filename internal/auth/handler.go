package auth

import (
	"net/http"
	"time"

	"github.com/charadle/charadle-backend/internal/auth/authctx"
	"github.com/charadle/charadle-backend/internal/platform/config"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// setAuthCookie mirrors the access token into an HTTP-only cookie so browser
// clients do not have to manage the Authorization header themselves.
func setAuthCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(config.Cfg.Auth.CookieName, token, maxAge,
		"/", config.Cfg.Auth.CookieDomain, config.Cfg.Auth.CookieSecure, true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetCookie(config.Cfg.Auth.CookieName, "", -1,
		"/", config.Cfg.Auth.CookieDomain, config.Cfg.Auth.CookieSecure, true)
}

// LoginHandler handles POST /api/auth/login
func LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest("email and password are required"))
		return
	}
	result, err := Login(req.Email, req.Password)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	setAuthCookie(c, result.Token, result.TokenExpiresAt)
	c.JSON(http.StatusOK, result)
}

// LoginAdminHandler handles POST /api/auth/login-admin
func LoginAdminHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest("email and password are required"))
		return
	}
	result, err := LoginAdmin(req.Email, req.Password)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	setAuthCookie(c, result.Token, result.TokenExpiresAt)
	c.JSON(http.StatusOK, result)
}

// RefreshHandler handles POST /api/auth/refresh
func RefreshHandler(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest("refreshToken is required"))
		return
	}
	result, err := Refresh(req.RefreshToken)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	setAuthCookie(c, result.Token, result.TokenExpiresAt)
	c.JSON(http.StatusOK, result)
}

// LogoutHandler handles POST /api/auth/logout
func LogoutHandler(c *gin.Context) {
	if userID, ok := authctx.UserID(c); ok {
		if err := Logout(userID); err != nil {
			apperr.Abort(c, err)
			return
		}
	}
	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// VerifyEmailHandler handles GET /api/auth/verify-email?token=...&email=...
func VerifyEmailHandler(c *gin.Context) {
	email := c.Query("email")
	verifyToken := c.Query("token")
	if email == "" || verifyToken == "" {
		apperr.Abort(c, apperr.BadRequest("email and token are required"))
		return
	}
	if err := VerifyEmail(email, verifyToken); err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// ResendVerificationHandler handles POST /api/auth/resend-verification
func ResendVerificationHandler(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest("email is required"))
		return
	}
	if err := ResendVerification(req.Email); err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification email sent"})
}
