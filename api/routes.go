package api

import (
	"github.com/charadle/charadle-backend/internal/accesslog"
	"github.com/charadle/charadle-backend/internal/admin"
	"github.com/charadle/charadle-backend/internal/auth"
	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/franchise"
	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/charadle/charadle-backend/internal/leaderboard"
	"github.com/charadle/charadle-backend/internal/platform/health"
	"github.com/charadle/charadle-backend/internal/play"
	"github.com/charadle/charadle-backend/internal/selection"
	"github.com/charadle/charadle-backend/internal/stats"
	"github.com/charadle/charadle-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every API route. Reads are public, mutations are
// admin-gated, and play routes accept either an authenticated user or an
// anonymous guest.
func SetupRoutes(router *gin.Engine) {
	router.GET("/api/health", health.Handler)

	api := router.Group("/api")
	api.Use(auth.OptionalAuth(), accesslog.Middleware())
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", auth.LoginHandler)
			authRoutes.POST("/login-admin", auth.LoginAdminHandler)
			authRoutes.POST("/refresh", auth.RefreshHandler)
			authRoutes.POST("/logout", auth.LogoutHandler)
			authRoutes.GET("/verify-email", auth.VerifyEmailHandler)
			authRoutes.POST("/resend-verification", auth.ResendVerificationHandler)
		}

		userRoutes := api.Group("/users")
		{
			userRoutes.POST("", user.RegisterHandler)
			userRoutes.GET("", auth.RequireAdmin(), user.ListHandler)
			userRoutes.GET("/me", auth.RequireAuth(), user.MeHandler)
			userRoutes.GET("/:id", auth.RequireAuth(), user.GetHandler)
			userRoutes.PATCH("/:id", auth.RequireAuth(), user.UpdateHandler)
			userRoutes.DELETE("/:id", auth.RequireAdmin(), user.DeleteHandler)
		}

		characterRoutes := api.Group("/characters")
		{
			characterRoutes.GET("", character.ListHandler)
			characterRoutes.GET("/:id", character.GetHandler)
			characterRoutes.POST("", auth.RequireAdmin(), character.CreateHandler)
			characterRoutes.PATCH("/:id", auth.RequireAdmin(), character.UpdateHandler)
			characterRoutes.PUT("/:id/image", auth.RequireAdmin(), character.ReplaceImageHandler)
			characterRoutes.DELETE("/:id/image", auth.RequireAdmin(), character.DeleteImageHandler)
			characterRoutes.DELETE("/:id", auth.RequireAdmin(), character.DeleteHandler)
		}

		franchiseRoutes := api.Group("/franchises")
		{
			franchiseRoutes.GET("", franchise.ListHandler)
			franchiseRoutes.GET("/:id", franchise.GetHandler)
			franchiseRoutes.POST("", auth.RequireAdmin(), franchise.CreateHandler)
			franchiseRoutes.PATCH("/:id", auth.RequireAdmin(), franchise.UpdateHandler)
			franchiseRoutes.DELETE("/:id", auth.RequireAdmin(), franchise.DeleteHandler)
		}

		modeRoutes := api.Group("/game-modes")
		{
			modeRoutes.GET("", gamemode.ListModesHandler)
			modeRoutes.GET("/:id", gamemode.GetModeHandler)
			modeRoutes.POST("", auth.RequireAdmin(), gamemode.CreateModeHandler)
			modeRoutes.PATCH("/:id", auth.RequireAdmin(), gamemode.UpdateModeHandler)
			modeRoutes.DELETE("/:id", auth.RequireAdmin(), gamemode.DeleteModeHandler)
		}

		selectionRoutes := api.Group("/daily-selection")
		{
			selectionRoutes.GET("", selection.TodayHandler)
			selectionRoutes.GET("/latest", selection.LatestHandler)
			selectionRoutes.GET("/all-today", selection.AllTodayHandler)
			selectionRoutes.GET("/mode/:modeId", selection.ByModeHandler)
			selectionRoutes.GET("/by-date", selection.ByDateHandler)
			selectionRoutes.GET("/calendar", selection.CalendarHandler)
			selectionRoutes.POST("/manual", auth.RequireAdmin(), selection.ManualHandler)
			selectionRoutes.POST("/repair-latest", auth.RequireAdmin(), selection.RepairLatestHandler)
		}

		playRoutes := api.Group("/plays")
		{
			playRoutes.POST("/start", play.StartHandler)
			playRoutes.POST("/:playId/guess", play.GuessHandler)
			playRoutes.GET("/:playId/attempts", play.AttemptsHandler)
			playRoutes.GET("/:playId/progress", play.ProgressHandler)
			playRoutes.GET("/progress/:modeConfigId", play.ProgressByModeHandler)
		}

		leaderboardRoutes := api.Group("/leaderboard")
		{
			leaderboardRoutes.GET("/daily", leaderboard.DailyHandler)
			leaderboardRoutes.GET("/weekly", leaderboard.WeeklyHandler)
			leaderboardRoutes.GET("/lifetime", leaderboard.LifetimeHandler)
			leaderboardRoutes.POST("/rebuild/daily", auth.RequireAdmin(), leaderboard.RebuildDailyHandler)
			leaderboardRoutes.POST("/rebuild/weekly", auth.RequireAdmin(), leaderboard.RebuildWeeklyHandler)
			leaderboardRoutes.POST("/rebuild/lifetime", auth.RequireAdmin(), leaderboard.RebuildLifetimeHandler)
		}

		statsRoutes := api.Group("/stats", auth.RequireAdmin())
		{
			statsRoutes.GET("/overview", stats.OverviewHandler)
			statsRoutes.GET("/modes", stats.ModesHandler)
			statsRoutes.POST("/sync", stats.SyncHandler)
		}

		api.GET("/admin/kpis", auth.RequireAdmin(), admin.KPIHandler)
	}
}
