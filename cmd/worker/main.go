package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skyflow/config"
	"github.com/Domenick1991/skyflow/internal/bootstrap"
	"github.com/Domenick1991/skyflow/internal/email"
	"github.com/Domenick1991/skyflow/internal/kafka"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := bootstrap.NewLogger(cfg.Log)

	if cfg.Kafka.NotificationsTopic == "" {
		logger.Fatal("kafka.notifications_topic is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logger)
	defer consumer.Close()

	sender := email.NewSender(logger)

	logger.WithField("topic", cfg.Kafka.NotificationsTopic).Info("worker started")
	err = consumer.Consume(ctx, func(ctx context.Context, event kafka.ReservationEvent) error {
		if err := sender.Send(ctx, event); err != nil {
			logger.WithError(err).WithField("event_id", event.ID).Warn("notification not sent")
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("consumer stopped")
		return
	}
	logger.Info("worker stopped")
}
