package auth

import (
	"strings"

	"github.com/charadle/charadle-backend/internal/auth/authctx"
	"github.com/charadle/charadle-backend/internal/platform/config"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// tokenFromRequest reads the access token from the auth cookie or, failing
// that, from a Bearer Authorization header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(config.Cfg.Auth.CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests that do not carry a valid access token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			apperr.Abort(c, apperr.Unauthorized("authentication required"))
			return
		}
		claims, err := token.ParseAccessToken(raw)
		if err != nil {
			apperr.Abort(c, apperr.Unauthorized("invalid or expired token"))
			return
		}
		authctx.Set(c, claims.UserID, claims.Email, claims.Role)
		c.Next()
	}
}

// OptionalAuth populates the auth context when a valid token is present and
// treats everything else as anonymous.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := tokenFromRequest(c); raw != "" {
			if claims, err := token.ParseAccessToken(raw); err == nil {
				authctx.Set(c, claims.UserID, claims.Email, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireAdmin is RequireAuth plus an admin role check.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			apperr.Abort(c, apperr.Unauthorized("authentication required"))
			return
		}
		claims, err := token.ParseAccessToken(raw)
		if err != nil {
			apperr.Abort(c, apperr.Unauthorized("invalid or expired token"))
			return
		}
		if claims.Role != user.RoleAdmin {
			apperr.Abort(c, apperr.Forbidden("admin access required"))
			return
		}
		authctx.Set(c, claims.UserID, claims.Email, claims.Role)
		c.Next()
	}
}
