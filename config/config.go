package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"campsite_db"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RabbitURL       string        `env:"RABBITMQ_URL"`
	NotifyTransport string        `env:"NOTIFY_TRANSPORT" envDefault:"none"`
	NotifyTimeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"3s"`
	KafkaBrokers    []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic      string        `env:"KAFKA_TOPIC" envDefault:"campsite.owner-alerts"`

	RedisURL     string        `env:"REDIS_URL"`
	SiteCacheTTL time.Duration `env:"SITE_CACHE_TTL" envDefault:"5m"`

	JWTSecret    string `env:"JWT_SECRET,notEmpty"`
	PublicOrigin string `env:"PUBLIC_ORIGIN" envDefault:"http://localhost:3000"`

	StripeSecretKey string        `env:"STRIPE_SECRET_KEY"`
	StripeAPIBase   string        `env:"STRIPE_API_BASE" envDefault:"https://api.stripe.com"`
	Currency        string        `env:"CURRENCY" envDefault:"krw"`
	GatewayTimeout  time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

const (
	TransportRabbitMQ = "rabbitmq"
	TransportKafka    = "kafka"
	TransportNone     = "none"
)

// Load reads .env when present, then the process environment.
func Load() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func Parse() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.NotifyTransport {
	case TransportRabbitMQ:
		if cfg.RabbitURL == "" {
			return nil, fmt.Errorf("NOTIFY_TRANSPORT=rabbitmq requires RABBITMQ_URL")
		}
	case TransportKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("NOTIFY_TRANSPORT=kafka requires KAFKA_BROKERS")
		}
	case TransportNone:
	default:
		return nil, fmt.Errorf("unknown NOTIFY_TRANSPORT %q", cfg.NotifyTransport)
	}
	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
