package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	// LockPeriod is the fixed maximum lifetime, in heights, stamped on
	// governance ledger locks.
	LockPeriod         uint64
	OutboxBatchSize    int
	WorkerPollInterval time.Duration
}

func Load() (Config, error) {
	// .env from CWD when present; otherwise the environment as-is.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "govledger"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		LockPeriod:         envUint("GOV_LOCK_PERIOD", 250),
		OutboxBatchSize:    int(envUint("OUTBOX_BATCH_SIZE", 100)),
		WorkerPollInterval: envDuration("WORKER_POLL_INTERVAL", 5*time.Second),
	}, nil
}

func envUint(name string, fallback uint64) uint64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
