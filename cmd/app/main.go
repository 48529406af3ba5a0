package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skyflow/config"
	"github.com/Domenick1991/skyflow/internal/auth"
	"github.com/Domenick1991/skyflow/internal/bootstrap"
	"github.com/Domenick1991/skyflow/internal/cache"
	"github.com/Domenick1991/skyflow/internal/kafka"
	"github.com/Domenick1991/skyflow/internal/opensky"
	"github.com/Domenick1991/skyflow/internal/repository"
	"github.com/Domenick1991/skyflow/internal/service/flights"
	"github.com/Domenick1991/skyflow/internal/service/reservations"
	"github.com/Domenick1991/skyflow/internal/service/users"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}
	defer stores.Close()
	logger.WithField("driver", cfg.Database.Driver).Info("database ready")

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Flights.CacheTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()

	userRepo := stores.Users
	reservationRepo := stores.Reservations

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	extractor := auth.NewExtractor(tokens, userRepo)

	services := bootstrap.Services{
		Users: users.NewUserService(
			userRepo,
			auth.NewBcryptHasher(0),
			tokens,
			extractor,
			users.WithLogger(logger),
		),
		Reservations: reservations.NewReservationService(
			reservationRepo,
			extractor,
			reservations.WithEvents(producer, cfg.Kafka.ReservationTopic, cfg.Kafka.NotificationsTopic),
			reservations.WithLogger(logger),
		),
		Flights: flights.NewFlightService(
			opensky.NewClient(cfg.OpenSky, logger),
			flights.WithCache(redisCache),
			flights.WithCapacity(cfg.OpenSky.DefaultCapacity),
			flights.WithLogger(logger),
		),
	}

	checks := map[string]bootstrap.HealthCheck{
		"database": stores.Ping,
		"redis":    redisCache.Ping,
	}
	if err := bootstrap.Run(ctx, cfg, services, logger, checks); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}
