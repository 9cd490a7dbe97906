package health

import (
	"context"
	"net/http"
	"time"

	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/pkg/lifecycle"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	checkInterval = 30 * time.Second
	pingTimeout   = 2 * time.Second
)

// PerformCheck pings the relational store once and records the result.
func PerformCheck() {
	sqlDB, err := database.DB.DB()
	if err != nil {
		update(false, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Warn().Err(err).Msg("health check: database ping failed")
		update(false, err.Error())
		return
	}
	update(true, "")
}

// StartChecker runs the ping loop until shutdown.
func StartChecker(handle *lifecycle.Handle) {
	defer handle.Close()

	PerformCheck()
	for {
		if err := handle.Sleep(checkInterval); err != nil {
			return
		}
		PerformCheck()
	}
}

// Handler serves GET /api/health.
func Handler(c *gin.Context) {
	state, lastChecked, lastError := Snapshot()
	status := http.StatusOK
	if state != StateHealthy {
		status = http.StatusServiceUnavailable
	}
	body := gin.H{
		"status":      state.String(),
		"lastChecked": lastChecked,
	}
	if lastError != "" {
		body["error"] = lastError
	}
	c.JSON(status, body)
}
