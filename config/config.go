package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	FixtureSourceLocal = "local"
	FixtureSourceR2    = "r2"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int
	LogLevel     slog.Level

	FixtureSource string
	FixtureDir    string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, so tests need not touch
// the process environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
	}

	cfg := &Config{
		DatabaseURL:   dbURL,
		JWTSecretKey:  jwtKey,
		ServerPort:    port,
		LogLevel:      level,
		FixtureSource: strings.ToLower(getenv("FIXTURE_SOURCE")),
		FixtureDir:    getenv("FIXTURE_DIR"),

		R2AccountID:       getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      getenv("R2_BUCKET_NAME"),

		CORSAllowedOrigins: []string{"*"},
		RateLimitRPS:       20,
		RateLimitBurst:     40,
	}

	if cfg.FixtureSource == "" {
		cfg.FixtureSource = FixtureSourceLocal
	}
	if cfg.FixtureDir == "" {
		cfg.FixtureDir = "fixtures"
	}
	switch cfg.FixtureSource {
	case FixtureSourceLocal:
	case FixtureSourceR2:
		if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
			return nil, fmt.Errorf("FIXTURE_SOURCE=r2 requires R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME")
		}
	default:
		return nil, fmt.Errorf("FIXTURE_SOURCE must be %q or %q, got %q", FixtureSourceLocal, FixtureSourceR2, cfg.FixtureSource)
	}

	if raw := getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORSAllowedOrigins = origins
		}
	}

	if raw := getenv("RATE_LIMIT_RPS"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive number, got %q", raw)
		}
		cfg.RateLimitRPS = rps
	}
	if raw := getenv("RATE_LIMIT_BURST"); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst <= 0 {
			return nil, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer, got %q", raw)
		}
		cfg.RateLimitBurst = burst
	}

	return cfg, nil
}
