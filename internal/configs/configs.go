package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	RedisSessionPrefix     string
	JWTSecret              string
	SessionTTLHours        int
	RateLimit              int
	ShutdownTimeoutSeconds int
	BoardIdleMinutes       int
}

// fileConfig is the optional config.yaml overlay. Environment variables
// win over the file, the file wins over built-in defaults.
type fileConfig struct {
	AppHost                string `yaml:"app_host"`
	AppPort                string `yaml:"app_port"`
	DatabaseDSN            string `yaml:"database_dsn"`
	RedisHost              string `yaml:"redis_host"`
	RedisPort              string `yaml:"redis_port"`
	RedisSessionPrefix     string `yaml:"redis_session_prefix"`
	JWTSecret              string `yaml:"jwt_secret"`
	SessionTTLHours        int    `yaml:"session_ttl_hours"`
	RateLimit              int    `yaml:"rate_limit_per_minute"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	BoardIdleMinutes       int    `yaml:"board_idle_minutes"`
}

func Load() Config {
	file := loadFile("config.yaml")

	appHost := getEnv("APP_HOST", fallback(file.AppHost, "127.0.0.1"))
	appPort := getEnv("APP_PORT", fallback(file.AppPort, "8080"))
	redisHost := getEnv("REDIS_HOST", fallback(file.RedisHost, "127.0.0.1"))
	redisPort := getEnv("REDIS_PORT", fallback(file.RedisPort, "6379"))

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", fallback(file.DatabaseDSN, "daytrack.db")),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisSessionPrefix:     getEnv("REDIS_SESSION_PREFIX", fallback(file.RedisSessionPrefix, "session:")),
		JWTSecret:              getEnv("JWT_SECRET", file.JWTSecret),
		SessionTTLHours:        getEnvAsInt("SESSION_TTL_HOURS", fallbackInt(file.SessionTTLHours, 72)),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", fallbackInt(file.RateLimit, 120)),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", fallbackInt(file.ShutdownTimeoutSeconds, 20)),
		BoardIdleMinutes:       getEnvAsInt("BOARD_IDLE_MINUTES", fallbackInt(file.BoardIdleMinutes, 30)),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must not be empty")
	}
	if cfg.SessionTTLHours <= 0 {
		log.Fatal("SESSION_TTL_HOURS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		log.Fatal("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.BoardIdleMinutes <= 0 {
		log.Fatal("BOARD_IDLE_MINUTES must be greater than 0")
	}
}

func loadFile(path string) fileConfig {
	var file fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return file
	}

	if err := yaml.Unmarshal(data, &file); err != nil {
		log.Fatalf("invalid %s: %v", path, err)
	}
	return file
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

func fallback(v, defaultVal string) string {
	if v != "" {
		return v
	}
	return defaultVal
}

func fallbackInt(v, defaultVal int) int {
	if v != 0 {
		return v
	}
	return defaultVal
}
