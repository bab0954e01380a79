package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"baibebalo-system/internal/earnings"
)

type Config struct {
	Redis    RedisConfig
	DB       DBConfig
	Auth     AuthConfig
	Gateway  GatewayConfig
	Services ServicesConfig
	Business earnings.BusinessConfig
}

type DBConfig struct {
	Driver string
	DSN    string
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPasswordHash string
}

type GatewayConfig struct {
	Port        string
	RateLimit   string
	CORSOrigins []string
}

type ServicesConfig struct {
	EarningsAddr string
	EarningsPort string
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cfg := Config{
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		DB: DBConfig{
			Driver: getEnv("DB_DRIVER", "postgres"),
			DSN:    getEnv("DB_DSN", ""),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			TokenTTL:          ttl,
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Gateway: GatewayConfig{
			Port:        getEnv("GATEWAY_PORT", "8080"),
			RateLimit:   getEnv("RATE_LIMIT", "100-M"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
		Services: ServicesConfig{
			EarningsAddr: getEnv("EARNINGS_SERVICE_ADDR", "localhost:50054"),
			EarningsPort: getEnv("EARNINGS_SERVICE_PORT", "50054"),
		},
	}

	business, err := LoadBusinessConfig()
	if err != nil {
		return Config{}, err
	}
	cfg.Business = business
	return cfg, nil
}

// LoadBusinessConfig reads the tariff settings from the environment. Unset variables
// take their documented defaults.
func LoadBusinessConfig() (earnings.BusinessConfig, error) {
	var b earnings.BusinessConfig
	if err := env.Parse(&b); err != nil {
		return b, fmt.Errorf("failed to parse business config: %w", err)
	}
	if err := b.LoadLocation(); err != nil {
		return b, err
	}
	if err := b.Validate(); err != nil {
		return b, fmt.Errorf("invalid business config: %w", err)
	}
	return b, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
