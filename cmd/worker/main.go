package main

import (
	"github.com/roma-frontend/hr-tracker-sub000/internal/app"
	"github.com/roma-frontend/hr-tracker-sub000/internal/config"
	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/apperror"
	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	apperror.Init()

	if err := app.RunWorker(cfg, log); err != nil {
		log.Fatal("run worker failed", zap.Error(err))
	}
}
