package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
}

type AppConfig struct {
	Port      string `envconfig:"HOTEL_APP_PORT" default:"8080"`
	LogLevel  string `envconfig:"HOTEL_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"HOTEL_LOG_FORMAT" default:"json"`

	// Store selects the reservation persistence backend: "postgres"
	// for the relational store, "memory" for the in-process one.
	Store string `envconfig:"HOTEL_STORE_BACKEND" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"HOTEL_DB_HOST" default:"localhost"`
	Port     string `envconfig:"HOTEL_DB_PORT" default:"5432"`
	User     string `envconfig:"HOTEL_DB_USER" default:"postgres"`
	Password string `envconfig:"HOTEL_DB_PASSWORD"`
	Name     string `envconfig:"HOTEL_DB_NAME" default:"hotel_reservation"`
	SSLMode  string `envconfig:"HOTEL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOTEL_DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"HOTEL_DB_MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"HOTEL_DB_CONN_MAX_LIFETIME" default:"5m"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// RedisConfig configures the availability cache. An empty address
// disables caching entirely.
type RedisConfig struct {
	Addr     string `envconfig:"HOTEL_REDIS_ADDR"`
	Password string `envconfig:"HOTEL_REDIS_PASSWORD"`
	DB       int    `envconfig:"HOTEL_REDIS_DB" default:"0"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.App.Store != StoreMemory && cfg.App.Store != StorePostgres {
		return nil, fmt.Errorf("unknown store backend %q", cfg.App.Store)
	}

	return &cfg, nil
}
