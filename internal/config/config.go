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

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Sports   SportsConfig
	News     NewsConfig
	Push     PushConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds the admin session configuration
type AuthConfig struct {
	AdminPasswordHash string
	JWTSecret         string
}

// SportsConfig holds the third-party football data API configuration.
// CompetitionCodes is the fixed ordered list the fetchers page through;
// BatchDelay is the pause inserted after every two codes to stay under
// the provider's rate limit.
type SportsConfig struct {
	APIKey           string
	BaseURL          string
	CompetitionCodes []string
	BatchDelay       time.Duration
}

// NewsConfig holds the general news API configuration
type NewsConfig struct {
	APIKey   string
	BaseURL  string
	MaxPages int
}

// PushConfig holds the push-messaging provider credentials
type PushConfig struct {
	CredentialsFile string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	WebAppURI string
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.AdminPasswordHash, err = requireEnv("ADMIN_PASSWORD_HASH"); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	// Sports data API configuration
	if cfg.Sports.APIKey, err = requireEnv("SPORTS_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Sports.BaseURL = getEnvWithDefault("SPORTS_API_BASE_URL", "https://api.football-data.org/v4")
	codes := getEnvWithDefault("COMPETITION_CODES", "PL,PD,SA,BL1,FL1,CL")
	cfg.Sports.CompetitionCodes = splitAndTrim(codes)
	if len(cfg.Sports.CompetitionCodes) == 0 {
		return nil, fmt.Errorf("COMPETITION_CODES must list at least one competition code")
	}
	batchDelay := getEnvWithDefault("SPORTS_API_BATCH_DELAY", "6s")
	cfg.Sports.BatchDelay, err = time.ParseDuration(batchDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SPORTS_API_BATCH_DELAY: %w", err)
	}

	// News API configuration
	if cfg.News.APIKey, err = requireEnv("NEWS_API_KEY"); err != nil {
		return nil, err
	}
	cfg.News.BaseURL = getEnvWithDefault("NEWS_API_BASE_URL", "https://newsdata.io/api/1")
	maxPages := getEnvWithDefault("NEWS_API_MAX_PAGES", "3")
	cfg.News.MaxPages, err = strconv.Atoi(maxPages)
	if err != nil {
		return nil, fmt.Errorf("failed to parse NEWS_API_MAX_PAGES: %w", err)
	}

	// Push provider configuration
	if cfg.Push.CredentialsFile, err = requireEnv("FIREBASE_CREDENTIALS_FILE"); err != nil {
		return nil, err
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
