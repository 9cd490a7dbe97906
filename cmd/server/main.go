package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charadle/charadle-backend/api"
	"github.com/charadle/charadle-backend/internal/platform/config"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/platform/health"
	"github.com/charadle/charadle-backend/internal/platform/logging"
	"github.com/charadle/charadle-backend/internal/platform/mailer"
	"github.com/charadle/charadle-backend/internal/platform/shutdown"
	"github.com/charadle/charadle-backend/internal/platform/startup"
	"github.com/charadle/charadle-backend/internal/selection"
	"github.com/charadle/charadle-backend/internal/stats"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/charadle/charadle-backend/pkg/lifecycle"
	"github.com/charadle/charadle-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("unable to load configuration: %v", err))
	}
	logging.Init(cfg.Server.Mode)

	if err := gameday.Configure(cfg.Game.Timezone); err != nil {
		panic(fmt.Sprintf("invalid game timezone %q: %v", cfg.Game.Timezone, err))
	}
	if cfg.Auth.JWTSecret != "" {
		token.Configure(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	} else {
		// ephemeral secret; fine for development, sessions die on restart
		token.GenerateSecretKey()
	}
	selection.NoRepeatDays = cfg.Game.NoRepeatDays
	mailer.Init(cfg.Mail)

	database.InitDB()
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("application initialization failed: %v", err))
	}
	health.PerformCheck()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Guest-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api.SetupRoutes(router)

	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	drawHandle, err := gracefulMgr.NewServiceHandle("daily-draw")
	if err != nil {
		panic(err)
	}
	go selection.StartDailyDrawJob(drawHandle, cfg.Game.DrawHour)

	statsHandle, err := gracefulMgr.NewServiceHandle("stats-sync")
	if err != nil {
		panic(err)
	}
	go stats.StartSyncJob(statsHandle, time.Duration(cfg.Game.StatsSyncMinutes)*time.Minute)

	healthHandle, err := forcefulMgr.NewServiceHandle("health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartChecker(healthHandle)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
