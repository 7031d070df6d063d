package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Data   DataConfig   `yaml:"data"`
	Ledger LedgerConfig `yaml:"ledger"`
	Redis  RedisConfig  `yaml:"redis"`
	Kafka  KafkaConfig  `yaml:"kafka"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DataConfig struct {
	FlightsFile   string `yaml:"flights_file"`
	CustomersFile string `yaml:"customers_file"`
	BookingsFile  string `yaml:"bookings_file"`
}

type LedgerConfig struct {
	// SystemDate pins the reference date used for departure and pricing
	// decisions (ISO yyyy-MM-dd). Empty means wall-clock time.
	SystemDate string `yaml:"system_date"`
}

type RedisConfig struct {
	Addr            string `yaml:"addr"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	FlightsCacheTTL int    `yaml:"flights_cache_ttl_seconds"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Data.FlightsFile == "" {
		cfg.Data.FlightsFile = "data/flights.txt"
	}
	if cfg.Data.CustomersFile == "" {
		cfg.Data.CustomersFile = "data/customers.txt"
	}
	if cfg.Data.BookingsFile == "" {
		cfg.Data.BookingsFile = "data/bookings.txt"
	}

	return &cfg, nil
}

// SystemDate resolves the ledger reference date: the pinned config value when
// set, today otherwise.
func (c *Config) SystemDate() (time.Time, error) {
	if c.Ledger.SystemDate == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse("2006-01-02", c.Ledger.SystemDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse system_date: %w", err)
	}
	return d, nil
}
