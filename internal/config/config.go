package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/min-nguyen/quant-ana-go/internal/infrastructure/alphavantage"
)

// Config represents the application configuration.
type Config struct {
	App          AppConfig           `envPrefix:"APP_"`
	AlphaVantage alphavantage.Config `envPrefix:"ALPHAVANTAGE_"`
	OrderKafka   OrderKafkaConfig    `envPrefix:"ORDER_KAFKA_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"quant-ana"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// OrderKafkaConfig represents the order feed Kafka configuration.
type OrderKafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"orders"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
