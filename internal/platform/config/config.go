package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	minThreshold       = 3
	defaultAlertTopic  = "recall.alerts"
	defaultTxTimeout   = 5 * time.Second
	defaultRedisPool   = 10
	defaultDialTimeout = 5 * time.Second
	defaultWriteLimit  = 60
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	Admin         string
	Threshold     uint64
	JWTSigningKey string
	JWTIssuer     string
	LogLevel      string
	LogFormat     string
	DatabaseURL   string
	TxTimeout     time.Duration
	// WritesPerMinute caps state-changing requests per caller. Zero disables
	// the limit.
	WritesPerMinute int
	Redis           RedisConfig
	Kafka           KafkaConfig
}

// RedisConfig configures the report tally backend. An empty URL selects the
// in-memory tally.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures alert dispatch. No brokers selects the log-only
// dispatcher.
type KafkaConfig struct {
	Brokers    []string
	AlertTopic string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	cfg := Server{
		Addr:          getEnv("RECALL_ADDR", ":8080"),
		Admin:         getEnv("RECALL_ADMIN", "admin"),
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     getEnv("JWT_ISSUER", "recallguard"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(os.Getenv("KAFKA_BROKERS")),
			AlertTopic: getEnv("KAFKA_ALERT_TOPIC", defaultAlertTopic),
		},
	}

	var errs []error
	var err error
	if cfg.Threshold, err = getUint("RECALL_THRESHOLD", minThreshold); err != nil {
		errs = append(errs, err)
	} else if cfg.Threshold < minThreshold {
		errs = append(errs, fmt.Errorf("RECALL_THRESHOLD must be at least %d", minThreshold))
	}
	if cfg.TxTimeout, err = getDuration("RECALL_TX_TIMEOUT", defaultTxTimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.Redis.PoolSize, err = getInt("REDIS_POOL_SIZE", defaultRedisPool); err != nil {
		errs = append(errs, err)
	}
	if cfg.Redis.MinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.Redis.DialTimeout, err = getDuration("REDIS_DIAL_TIMEOUT", defaultDialTimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.Redis.ReadTimeout, err = getDuration("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.Redis.WriteTimeout, err = getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.WritesPerMinute, err = getInt("RATE_LIMIT_WRITES_PER_MINUTE", defaultWriteLimit); err != nil {
		errs = append(errs, err)
	} else if cfg.WritesPerMinute < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WRITES_PER_MINUTE must not be negative"))
	}
	if strings.TrimSpace(cfg.Admin) == "" {
		errs = append(errs, errors.New("RECALL_ADMIN must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getUint(key string, fallback uint64) (uint64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
