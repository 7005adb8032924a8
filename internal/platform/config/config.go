package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
//
// Values come from the YAML file named by CONFIG_FILE when set, then from
// environment variables, which win over the file.
type Config struct {
	ServiceName  string   `yaml:"service_name"`
	HTTPPort     string   `yaml:"http_port"`
	PostgresDSN  string   `yaml:"postgres_dsn"`
	KafkaBrokers []string `yaml:"kafka_brokers"`

	SnowflakeSiteID   int `yaml:"snowflake_site_id"`
	SnowflakeWorkerID int `yaml:"snowflake_worker_id"`

	OutboxPollInterval time.Duration `yaml:"outbox_poll_interval"`
	OutboxBatchSize    int           `yaml:"outbox_batch_size"`

	TracingEnabled bool `yaml:"tracing_enabled"`
	AutoMigrate    bool `yaml:"auto_migrate"`
}

func defaults() Config {
	return Config{
		ServiceName:        "arcana",
		HTTPPort:           "8080",
		KafkaBrokers:       []string{"localhost:9092"},
		OutboxPollInterval: 2 * time.Second,
		OutboxBatchSize:    100,
	}
}

func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if value := strings.TrimSpace(os.Getenv("SERVICE_NAME")); value != "" {
		cfg.ServiceName = value
	}
	if value := strings.TrimSpace(os.Getenv("HTTP_PORT")); value != "" {
		cfg.HTTPPort = value
	}
	if value := strings.TrimSpace(os.Getenv("POSTGRES_DSN")); value != "" {
		cfg.PostgresDSN = value
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) > 0 {
		cfg.KafkaBrokers = brokers
	}

	var err error
	if cfg.SnowflakeSiteID, err = envInt("SNOWFLAKE_SITE_ID", cfg.SnowflakeSiteID); err != nil {
		return Config{}, err
	}
	if cfg.SnowflakeWorkerID, err = envInt("SNOWFLAKE_WORKER_ID", cfg.SnowflakeWorkerID); err != nil {
		return Config{}, err
	}
	if cfg.OutboxBatchSize, err = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize); err != nil {
		return Config{}, err
	}
	if raw := strings.TrimSpace(os.Getenv("OUTBOX_POLL_INTERVAL")); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("OUTBOX_POLL_INTERVAL: %w", err)
		}
		cfg.OutboxPollInterval = interval
	}
	if cfg.OutboxPollInterval <= 0 {
		return Config{}, errors.New("outbox poll interval must be positive")
	}

	cfg.TracingEnabled = envBool("TRACING_ENABLED", cfg.TracingEnabled)
	cfg.AutoMigrate = envBool("AUTO_MIGRATE", cfg.AutoMigrate)
	return cfg, nil
}

func envInt(name string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return value, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
