package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightledger/config"
	"github.com/Domenick1991/flightledger/internal/bootstrap"
	"github.com/Domenick1991/flightledger/internal/cache"
	"github.com/Domenick1991/flightledger/internal/command"
	"github.com/Domenick1991/flightledger/internal/kafka"
	"github.com/Domenick1991/flightledger/internal/ledger"
	"github.com/Domenick1991/flightledger/internal/storage"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	systemDate, err := cfg.SystemDate()
	if err != nil {
		log.Fatalf("resolve system date: %v", err)
	}

	led := ledger.New(systemDate)
	store := storage.NewFileStore(cfg.Data.FlightsFile, cfg.Data.CustomersFile, cfg.Data.BookingsFile)
	if err := store.Load(led); err != nil {
		log.Fatalf("load ledger: %v", err)
	}

	opts := []command.ExecutorOption{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Redis.FlightsCacheTTL)*time.Second)
		opts = append(opts, command.WithCache(redisCache))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		opts = append(opts,
			command.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			command.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	executor := command.NewExecutor(led, store, opts...)

	if err := bootstrap.Run(ctx, cfg, executor); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
