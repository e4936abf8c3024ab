package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"hotel_booking"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Empty RabbitURL switches notifications to the log-only publisher
	// and disables the subscription consumer.
	RabbitURL            string `envconfig:"RABBITMQ_URL"`
	NotificationExchange string `envconfig:"NOTIFICATION_EXCHANGE" default:"hotel.bookings"`
	SubscriptionExchange string `envconfig:"SUBSCRIPTION_EXCHANGE" default:"hotel.billing"`
	SubscriptionQueue    string `envconfig:"SUBSCRIPTION_QUEUE" default:"hotel-booking.subscriptions"`

	// Empty RedisAddr disables the availability cache.
	RedisAddr            string        `envconfig:"REDIS_ADDR"`
	AvailabilityCacheTTL time.Duration `envconfig:"AVAILABILITY_CACHE_TTL" default:"30s"`

	LockTimeout time.Duration `envconfig:"LOCK_TIMEOUT" default:"5s"`

	NotificationLocale string `envconfig:"NOTIFICATION_LOCALE" default:"es-AR"`
	OtelEndpoint       string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	TrialDays int `envconfig:"TRIAL_DAYS" default:"14"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] no .env file, using environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.TrialDays < 0 {
		return nil, fmt.Errorf("load config: TRIAL_DAYS must be >= 0, got %d", cfg.TrialDays)
	}
	return &cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
