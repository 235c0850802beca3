package configs

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	Neo4jURI  string
	Neo4jUser string
	Neo4jPass string
	Neo4jDB   string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RedisAddr       string
	AuthRateLimit   int64
	AuthRateWindow  time.Duration

	KafkaBrokers string
	KafkaTopic   string
}

func LoadConfig() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", ":8080"),

		Neo4jURI:  getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser: getEnv("NEO4J_USER", "neo4j"),
		Neo4jPass: getEnv("NEO4J_PASS", "password"),
		Neo4jDB:   getEnv("NEO4J_DB", "neo4j"),

		JWTSecret:       getEnv("JWT_SECRET", "replace-this-with-a-strong-secret"),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MIN", 30)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_TTL_DAYS", 7)) * 24 * time.Hour,

		RedisAddr:      os.Getenv("REDIS_ADDR"), // empty disables rate limiting
		AuthRateLimit:  int64(getEnvInt("AUTH_RATE_LIMIT", 20)),
		AuthRateWindow: time.Duration(getEnvInt("AUTH_RATE_WINDOW_SEC", 60)) * time.Second,

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"), // empty disables event publishing
		KafkaTopic:   getEnv("KAFKA_TOPIC", "social.activity"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
