// Package config provides centralized configuration loaded from environment
// variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config is populated from environment variables with sensible defaults.
type Config struct {
	// Server
	Host      string
	Port      int
	StaticDir string

	// Storage
	DBPath string

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Pose bridge
	PoseScript  string
	PoseMinConf float64

	LogLevel    string
	Environment string // development, staging, production
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Host:      envOr("SWINGSIGHT_HOST", "0.0.0.0"),
		Port:      envInt("SWINGSIGHT_PORT", envInt("PORT", 8080)),
		StaticDir: envOr("SWINGSIGHT_STATIC_DIR", ""),

		DBPath: envOr("SWINGSIGHT_DB_PATH", defaultDBPath()),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		PoseScript:  envOr("SWINGSIGHT_POSE_SCRIPT", ""),
		PoseMinConf: envFloat("SWINGSIGHT_POSE_MIN_CONF", 0.5),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		Environment: envOr("ENVIRONMENT", "development"),
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// defaultDBPath places the database under ~/.swingsight, falling back to the
// working directory when the home directory is unknown.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "swingsight.db"
	}
	return filepath.Join(homeDir, ".swingsight", "swingsight.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
