package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristianccgg/letranido-backend/config"
	"github.com/cristianccgg/letranido-backend/internal/api/handler"
	"github.com/cristianccgg/letranido-backend/internal/api/middleware"
	"github.com/cristianccgg/letranido-backend/pkg/jwt"
	"github.com/cristianccgg/letranido-backend/pkg/redis"
)

// Setup builds the Gin engine with the full route table.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	gate *middleware.MaintenanceGate,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Maintenance status and admin auth stay reachable while the
		// gate is active; everything else behind the gate gets 503.
		v1.GET("/maintenance", h.Maintenance.Status)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			admin := authorized.Group("")
			admin.Use(middleware.AdminOnly())
			{
				admin.POST("/maintenance/toggle", h.Maintenance.Toggle)
				admin.POST("/contests", h.Contest.CreateContest)
				admin.PUT("/contests/:id", h.Contest.UpdateContest)
				admin.DELETE("/contests/:id", h.Contest.DeleteContest)
				admin.POST("/contests/check-deadlines", h.Contest.CheckDeadlines)
				admin.GET("/export/subscribers", h.Export.ExportSubscribers)
			}
		}

		// Public surface, blocked while maintenance is active.
		public := v1.Group("")
		public.Use(gate.Handler())
		{
			public.GET("/contests", h.Contest.ListContests)
			public.GET("/contests/calendar.ics", h.Contest.Calendar)
			public.GET("/contests/:slug", h.Contest.GetContest)

			newsletter := public.Group("/newsletter")
			newsletter.Use(middleware.RateLimit(rdb, 5, time.Minute))
			{
				newsletter.POST("/subscribe", h.Newsletter.Subscribe)
				newsletter.POST("/unsubscribe", h.Newsletter.Unsubscribe)
			}
		}
	}

	return r
}
