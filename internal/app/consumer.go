package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/djval79/careflow-sub001/internal/audit"
	"github.com/djval79/careflow-sub001/internal/config"
	"github.com/djval79/careflow-sub001/internal/events"
	"github.com/djval79/careflow-sub001/internal/leave"
	"github.com/djval79/careflow-sub001/internal/leaverule"
	"github.com/djval79/careflow-sub001/internal/messaging/kafka/consumer"
	"github.com/djval79/careflow-sub001/internal/shared/connection"
)

// RunConsumer subscribes to employee sync events and provisions default
// leave entitlements until interrupted.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   events.EmployeeSyncedTopic,
		GroupID: "carehub-entitlements",
	})
	defer reader.Close()

	leaveRepo := leave.NewRepository(gormDB)
	ruleRepo := leaverule.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	leaveService := leave.NewService(sqlDB, leaveRepo, ruleRepo, auditRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeSynced(ctx, reader, leaveService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
