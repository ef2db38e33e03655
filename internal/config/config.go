package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/campaignkit/campaign-agents/internal/search"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Search providers
	GoogleAPIKey      string
	GoogleCX          string
	SerpAPIKey        string
	SearchTimeout     time.Duration
	SearchConcurrency bool

	// Optional Redis search cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Collaborator APIs
	YouTubeAPIKey string
	MistralAPIKey string
	MistralModel  string

	// Azure Storage configuration
	StorageAccount   string
	StorageContainer string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Scheduled re-discovery
	ScheduledCampaignsFile string
	RefreshSchedule        string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", ""),
		GoogleCX:          getEnv("GOOGLE_CX", ""),
		SerpAPIKey:        getEnv("SERPAPI_KEY", ""),
		SearchTimeout:     time.Duration(getIntEnv("SEARCH_TIMEOUT_SECONDS", 15)) * time.Second,
		SearchConcurrency: getBoolEnv("SEARCH_CONCURRENCY", true),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		CacheTTL:      time.Duration(getIntEnv("SEARCH_CACHE_TTL_MINUTES", 60)) * time.Minute,

		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
		MistralAPIKey: getEnv("MISTRAL_API_KEY", ""),
		MistralModel:  getEnv("MISTRAL_MODEL", "mistral-large-latest"),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "discoveries"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		ScheduledCampaignsFile: getEnv("SCHEDULED_CAMPAIGNS_FILE", ""),
		RefreshSchedule:        getEnv("REFRESH_SCHEDULE", "0 0 9 * * MON"),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// NotificationsEnabled reports whether any delivery channel is configured
func (c *Config) NotificationsEnabled() bool {
	return c.TeamsWebhookURL != "" || c.NotificationEmail != ""
}

func (c *Config) validate() error {
	if c.GoogleAPIKey == "" || c.GoogleCX == "" {
		return fmt.Errorf("GOOGLE_API_KEY and GOOGLE_CX are required: %w", search.ErrNotConfigured)
	}

	if c.SearchTimeout <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT_SECONDS must be positive")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
