package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Ollama    OllamaConfig
	JWT       JWTConfig
	Screening ScreeningConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	CORSOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// ScreeningConfig tunes the invitation fan-out and the candidate-facing
// magic-link base URL.
type ScreeningConfig struct {
	BaseURL        string
	InviteWorkers  int
	SendTimeout    time.Duration
	ResultCacheTTL time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// .env is optional; real deployments inject env directly.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}
	optInt := func(key string, fallback int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}
		return n
	}
	optDur := func(key string, fallback time.Duration) time.Duration {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fallback
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "screenhub"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
		CORSOrigins: splitCSV(opt("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", "localhost"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:      optDur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:        int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:        int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime: optDur("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime: optDur("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	cfg.SMTP = SMTPConfig{
		Host:      opt("SMTP_HOST", ""),
		Port:      optInt("SMTP_PORT", 587),
		Username:  opt("SMTP_USERNAME", ""),
		Password:  os.Getenv("SMTP_PASSWORD"),
		FromName:  opt("SMTP_FROM_NAME", "Screening Team"),
		FromEmail: opt("SMTP_FROM_EMAIL", ""),
	}

	cfg.Ollama = OllamaConfig{
		BaseURL: opt("OLLAMA_BASE_URL", "http://localhost:11434"),
		Model:   opt("OLLAMA_MODEL", "llama3.1:8b"),
		Timeout: optDur("OLLAMA_TIMEOUT", 60*time.Second),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Screening = ScreeningConfig{
		BaseURL:        opt("SCREENING_BASE_URL", "http://localhost:3000"),
		InviteWorkers:  optInt("SCREENING_INVITE_WORKERS", 4),
		SendTimeout:    optDur("SCREENING_SEND_TIMEOUT", 10*time.Second),
		ResultCacheTTL: optDur("SCREENING_RESULT_CACHE_TTL", 30*time.Second),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
