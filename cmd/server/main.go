package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cristianccgg/letranido-backend/config"
	"github.com/cristianccgg/letranido-backend/internal/api/handler"
	"github.com/cristianccgg/letranido-backend/internal/api/middleware"
	"github.com/cristianccgg/letranido-backend/internal/api/router"
	"github.com/cristianccgg/letranido-backend/internal/mailer"
	"github.com/cristianccgg/letranido-backend/internal/repository"
	"github.com/cristianccgg/letranido-backend/internal/scheduler"
	"github.com/cristianccgg/letranido-backend/internal/service"
	"github.com/cristianccgg/letranido-backend/pkg/database"
	"github.com/cristianccgg/letranido-backend/pkg/jwt"
	applogger "github.com/cristianccgg/letranido-backend/pkg/logger"
	"github.com/cristianccgg/letranido-backend/pkg/redis"
)

func main() {
	// 1. Load configuration.
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger.
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting letranido backend",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Database and migrations.
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("connecting to database failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("getting underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("running migrations failed", zap.Error(err))
	}

	// 4. Redis. A failed connection degrades: no rate limiting, no token
	// revocation, maintenance gate falls back to its TTL cache.
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running degraded", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager.
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Dependency wiring: repository → service → handler.
	dispatcher := mailer.NewHTTPDispatcher(&cfg.Dispatcher)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, dispatcher, rdb, logger)
	h := handler.NewHandler(svc)

	// 7. Maintenance gate and router.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gate := middleware.NewMaintenanceGate(ctx, svc.Maintenance, rdb, logger)
	engine := router.Setup(cfg, h, jwtMgr, rdb, gate, logger)

	// 8. Deadline checker schedule.
	sched := scheduler.New(&cfg.Checker, svc.Deadline, logger)
	sched.Start(ctx)

	// 9. HTTP server with graceful shutdown.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 10. Wait for a termination signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
