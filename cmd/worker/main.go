package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/djval79/careflow-sub001/internal/app"
	"github.com/djval79/careflow-sub001/internal/config"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	if err := app.RunWorker(cfg); err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}
}
