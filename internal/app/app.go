package app

import (
	"context"
	"net/http"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/config"
	"github.com/roma-frontend/hr-tracker-sub000/internal/middleware"
	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/connection"
	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure, applies migrations and registers every
// route on router. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := connection.RunMigrations(sqlDB, logger); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			log.Warn("close database failed", zap.Error(err))
		}
	}

	router.Use(middleware.ContextLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok", "redis": "ok"}
		status := http.StatusOK
		if err := sqlDB.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		response.Success(c, status, checks, nil)
	})

	// 2. Register Modules & Routes
	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, logger); err != nil {
		cleanup()
		return nil, err
	}

	log.Info("application modules registered")
	return cleanup, nil
}
