package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	SessionBackend         string
	RedisAddr              string
	SessionPrefix          string
	SessionTTLMinutes      int
	StoreReadDelayMs       int
	StoreWriteDelayMs      int
	RateLimit              int
	BcryptCost             int
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "taskdeck.db"),
		SessionBackend:         getEnv("SESSION_BACKEND", "redis"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		SessionPrefix:          getEnv("SESSION_PREFIX", "taskdeck:sessions"),
		SessionTTLMinutes:      getEnvAsInt("SESSION_TTL_MINUTES", 10080),
		StoreReadDelayMs:       getEnvAsInt("STORE_READ_DELAY_MS", 0),
		StoreWriteDelayMs:      getEnvAsInt("STORE_WRITE_DELAY_MS", 0),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		BcryptCost:             getEnvAsInt("BCRYPT_COST", 12),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.SessionBackend != "redis" && cfg.SessionBackend != "memory" {
		log.Fatal("SESSION_BACKEND must be either redis or memory")
	}
	if cfg.SessionTTLMinutes <= 0 {
		log.Fatal("SESSION_TTL_MINUTES must be greater than 0")
	}
	if cfg.StoreReadDelayMs < 0 || cfg.StoreWriteDelayMs < 0 {
		log.Fatal("store delays must not be negative")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		log.Fatal("BCRYPT_COST must be between 4 and 31")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
