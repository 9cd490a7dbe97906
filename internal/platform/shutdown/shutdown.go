package shutdown

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charadle/charadle-backend/internal/stats"
	"github.com/charadle/charadle-backend/pkg/lifecycle"
	"github.com/rs/zerolog/log"
)

// Coordinator orchestrates graceful shutdown. It owns no services itself;
// it broadcasts over the lifecycle managers the jobs were registered with.
type Coordinator struct {
	GracefulManager *lifecycle.Manager
	ForcefulManager *lifecycle.Manager
}

func NewCoordinator(gracefulMgr, forcefulMgr *lifecycle.Manager) *Coordinator {
	return &Coordinator{
		GracefulManager: gracefulMgr,
		ForcefulManager: forcefulMgr,
	}
}

// ListenForSignalsAndShutdown blocks until SIGINT/SIGTERM, then drains the
// HTTP server, stops background jobs in two phases (graceful, then forced)
// and flushes a final stats rollup before returning.
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info().Msg("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	} else {
		log.Info().Msg("http server stopped")
	}

	gracefulTimeout := 30 * time.Second
	c.GracefulManager.Shutdown()
	remaining := c.GracefulManager.WaitWithTimeout(gracefulTimeout)
	if len(remaining) > 0 {
		log.Warn().Strs("services", remaining).Msg("graceful phase timed out, forcing stop")
		c.ForcefulManager.Shutdown()
		c.ForcefulManager.WaitWithTimeout(time.Second)
	}

	// capture plays completed since the last scheduled sync
	if err := stats.SyncDay(time.Now()); err != nil {
		log.Error().Err(err).Msg("final stats sync failed")
	}

	log.Info().Msg("shutdown complete")
}
