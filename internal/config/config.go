package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Email   EmailConfig
	OpenAI  OpenAIConfig
	Feed    FeedConfig
	Report  ReportConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDBConfig holds MongoDB connection details
type MongoDBConfig struct {
	URI                    string
	Host                   string
	Port                   string
	Username               string
	Password               string
	Database               string
	TasksCollection        string
	ClientsCollection      string
	StrategyCollection     string
	StrategyHeadCollection string
	EmployeesCollection    string
	AuthSource             string
}

// EmailConfig holds SendGrid email configuration
type EmailConfig struct {
	APIKey    string
	FromEmail string
	// ReportRecipient receives the scheduled monthly report
	ReportRecipient string
}

// OpenAIConfig holds the optional report summary model configuration
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
}

// FeedConfig controls the snapshot refresh loop
type FeedConfig struct {
	RefreshInterval time.Duration
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	// Cron schedule for the monthly report email, with seconds precision
	Schedule string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8090"),
			Host: getEnv("HOST", "0.0.0.0"),
		},
		MongoDB: MongoDBConfig{
			URI:                    getEnv("MONGODB_URI", ""),
			Host:                   getEnv("MONGODB_HOST", "localhost"),
			Port:                   getEnv("MONGODB_PORT", "27017"),
			Username:               getEnv("MONGODB_USERNAME", ""),
			Password:               getEnv("MONGODB_PASSWORD", ""),
			Database:               getEnv("MONGODB_DATABASE", "contentops"),
			TasksCollection:        getEnv("MONGODB_TASKS_COLLECTION", "tasks"),
			ClientsCollection:      getEnv("MONGODB_CLIENTS_COLLECTION", "clients"),
			StrategyCollection:     getEnv("MONGODB_STRATEGY_COLLECTION", "strategy_clients"),
			StrategyHeadCollection: getEnv("MONGODB_STRATEGY_HEAD_COLLECTION", "strategy_head_clients"),
			EmployeesCollection:    getEnv("MONGODB_EMPLOYEES_COLLECTION", "employees"),
			AuthSource:             getEnv("MONGODB_AUTH_SOURCE", "admin"),
		},
		Email: EmailConfig{
			APIKey:          getEnv("SENDGRID_API_KEY", ""),
			FromEmail:       getEnv("SENDGRID_FROM_EMAIL", ""),
			ReportRecipient: getEnv("REPORT_RECIPIENT_EMAIL", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloat("OPENAI_TEMPERATURE", 0.3),
		},
		Feed: FeedConfig{
			RefreshInterval: time.Duration(getEnvInt("FEED_REFRESH_SECONDS", 30)) * time.Second,
		},
		Report: ReportConfig{
			// First day of the month at 06:00
			Schedule: getEnv("REPORT_CRON_SCHEDULE", "0 0 6 1 * *"),
		},
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ValidateConfig validates that required configuration values are present
func ValidateConfig(config *Config) error {
	if config.MongoDB.URI == "" && config.MongoDB.Host == "" {
		return fmt.Errorf("MONGODB_URI or MONGODB_HOST is required")
	}
	if config.MongoDB.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required")
	}
	if config.Feed.RefreshInterval <= 0 {
		return fmt.Errorf("FEED_REFRESH_SECONDS must be positive")
	}
	// SendGrid and OpenAI keys are optional: email and AI summaries are
	// disabled when absent.
	return nil
}

// Helper functions for environment variable access
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
