package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adilhasan/mufradat/checkin"
	"github.com/adilhasan/mufradat/config"
	"github.com/adilhasan/mufradat/controllers"
	"github.com/adilhasan/mufradat/glossary"
	"github.com/adilhasan/mufradat/middleware"
	"github.com/adilhasan/mufradat/utils"
	"github.com/adilhasan/mufradat/words"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, g *glossary.Provider, assigner *words.Assigner, svc *checkin.Service) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		dbStatus := "connected"
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "disconnected"
		}
		utils.Success(ctx, gin.H{
			"status":          "ok",
			"db":              dbStatus,
			"glossary_loaded": g.Available(),
		})
	})

	authController := controllers.NewAuthController(db)
	checkinController := controllers.NewCheckInController(svc)
	wordController := controllers.NewWordController(assigner, g, svc.Clock())
	leaderboardController := controllers.NewLeaderboardController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit("auth", cfg.AuthRateLimitPerMinute))
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)

	public := api.Group("")
	public.Use(middleware.RateLimit("api", cfg.APIRateLimitPerMinute))
	public.GET("/word", wordController.Current)
	public.GET("/leaderboard", leaderboardController.Top)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimit("api", cfg.APIRateLimitPerMinute))
	protected.GET("/users/me/stats", checkinController.Stats)
	protected.GET("/checkin/status", checkinController.Status)
	protected.POST("/checkin", checkinController.CheckIn)
	protected.GET("/words/history", wordController.History)
	protected.GET("/achievements", checkinController.Achievements)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
