package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr             string
	JWTSigningKey    string
	JWTTTL           time.Duration
	SnowflakeNode    int64
	TimelineCacheTTL time.Duration
	Database         DatabaseConfig
	Redis            RedisConfig
	Kafka            KafkaConfig
	Log              LogConfig
}

// DatabaseConfig selects the storage engine. An empty URL runs on the
// in-memory engine.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the optional timeline cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event stream.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
}

type LogConfig struct {
	Level  string
	Format string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          env("CONTACTS_ADDR", ":8080"),
		JWTSigningKey: env("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:           splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:             env("AUDIT_TOPIC", "audit.entries"),
			Partitions:        3,
			ReplicationFactor: 1,
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "json"),
		},
	}

	var err error
	if cfg.JWTTTL, err = duration("JWT_TTL", time.Hour); err != nil {
		return Server{}, err
	}
	if cfg.TimelineCacheTTL, err = duration("TIMELINE_CACHE_TTL", 5*time.Minute); err != nil {
		return Server{}, err
	}
	node := env("SNOWFLAKE_NODE", "1")
	if cfg.SnowflakeNode, err = strconv.ParseInt(node, 10, 64); err != nil || cfg.SnowflakeNode < 0 || cfg.SnowflakeNode > 31 {
		return Server{}, fmt.Errorf("SNOWFLAKE_NODE must be an integer between 0 and 31, got %q", node)
	}
	return cfg, nil
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
