package main

import (
	"context"
	"log"
	"os"

	"github.com/Domenick1991/flightledger/config"
	"github.com/Domenick1991/flightledger/internal/cli"
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
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		opts = append(opts,
			command.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			command.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	executor := command.NewExecutor(led, store, opts...)

	runner := cli.NewRunner(executor, os.Stdin, os.Stdout)
	if err := runner.Run(context.Background()); err != nil {
		log.Fatalf("command loop: %v", err)
	}

	// Final snapshot so interactive sessions always end consistent on disk.
	if err := store.StoreAll(led); err != nil {
		log.Fatalf("store ledger: %v", err)
	}
}
