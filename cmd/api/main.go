package main

import (
	"github.com/roma-frontend/hr-tracker-sub000/internal/app"
	"github.com/roma-frontend/hr-tracker-sub000/internal/bootstrap"
	"github.com/roma-frontend/hr-tracker-sub000/internal/config"
	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/apperror"
	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, log)
	if err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	auditLogger := bootstrap.NewStdoutAuditLogger(log)
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		auditLogger,
		log,
	)
}
