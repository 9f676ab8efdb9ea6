package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Argon2    Argon2Config
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Lockout   LockoutConfig
	Secure    SecureConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	URL string // optional; enables the shared lockout store
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RatePerIP string // "100-M" = 100/min; empty disables
}

type LockoutConfig struct {
	MaxAttempts     int // 0 disables
	CooldownSeconds int
}

type SecureConfig struct {
	IsDevelopment bool
}

// Load reads configuration from the environment. DATABASE_URL and JWT_SECRET
// are required; their absence is a startup-fatal condition.
func Load() (*Config, error) {
	viper.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		viper.SetConfigFile(p)
		_ = viper.ReadInConfig()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: strings.TrimSpace(viper.GetString("DATABASE_URL")),
		},
		Redis: RedisConfig{
			URL: strings.TrimSpace(viper.GetString("REDIS_URL")),
		},
		JWT: JWTConfig{
			Secret: strings.TrimSpace(viper.GetString("JWT_SECRET")),
			Issuer: getEnvOrDefault("JWT_ISSUER", "blood-donation-backend"),
			TTL:    time.Duration(viper.GetInt64("JWT_TTL_SECONDS")) * time.Second,
		},
		Argon2: Argon2Config{
			Memory:      uint32(viper.GetInt("ARGON2_MEMORY")),
			Iterations:  uint32(viper.GetInt("ARGON2_ITERATIONS")),
			Parallelism: uint8(viper.GetInt("ARGON2_PARALLELISM")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseCSV(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		RateLimit: RateLimitConfig{
			RatePerIP: viper.GetString("RATE_LIMIT_PER_IP"),
		},
		Lockout: LockoutConfig{
			MaxAttempts:     viper.GetInt("LOCKOUT_MAX_ATTEMPTS"),
			CooldownSeconds: viper.GetInt("LOCKOUT_COOLDOWN_SECONDS"),
		},
		Secure: SecureConfig{
			IsDevelopment: viper.GetBool("DEV_MODE"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = 24 * time.Hour
	}
	if cfg.Argon2.Memory == 0 {
		cfg.Argon2.Memory = 64 * 1024
	}
	if cfg.Argon2.Iterations == 0 {
		cfg.Argon2.Iterations = 3
	}
	if cfg.Argon2.Parallelism == 0 {
		cfg.Argon2.Parallelism = 2
	}
	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
