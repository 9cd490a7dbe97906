package accesslog

import (
	"github.com/charadle/charadle-backend/internal/auth/authctx"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Middleware records one row per API request after the handler chain has
// run, so the auth context and final status are available. Logging failures
// never fail the request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		entry := AccessLog{
			Method: c.Request.Method,
			Path:   c.FullPath(),
			Status: c.Writer.Status(),
		}
		if entry.Path == "" {
			entry.Path = c.Request.URL.Path
		}
		if userID, ok := authctx.UserID(c); ok {
			entry.UserID = &userID
		} else if guestID := c.GetHeader("X-Guest-Id"); guestID != "" {
			entry.GuestID = &guestID
		}

		if err := database.DB.Create(&entry).Error; err != nil {
			log.Warn().Err(err).Str("path", entry.Path).Msg("unable to record access log")
		}
	}
}
