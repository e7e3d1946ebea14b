package config

import (
	"os"
	"strconv"
	"time"

	"pdf-translate-server/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	TempDir        string
	MaxFileSize    int64
	LogLevel       string
	DeepLAPIKey    string
	DeepLAPIURL    string
	PollInterval   time.Duration
	StrictPDFCheck bool
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:     getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		TempDir:        getEnvOrDefault("TEMP_DIR", "./temp"),
		MaxFileSize:    getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		DeepLAPIKey:    getEnvOrDefault("DEEPL_API_KEY", ""),
		DeepLAPIURL:    getEnvOrDefault("DEEPL_API_URL", "https://api-free.deepl.com"),
		PollInterval:   getEnvSecondsOrDefault("DEEPL_POLL_INTERVAL", 2*time.Second),
		StrictPDFCheck: getEnvBoolOrDefault("STRICT_VALIDATION", false),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetTempDir returns the writable temp-file directory
func (c *AppConfig) GetTempDir() string {
	return c.TempDir
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetDeepLAPIKey returns the DeepL API credential
func (c *AppConfig) GetDeepLAPIKey() string {
	return c.DeepLAPIKey
}

// GetDeepLAPIURL returns the DeepL API base URL
func (c *AppConfig) GetDeepLAPIURL() string {
	return c.DeepLAPIURL
}

// GetPollInterval returns the delay between translation status polls
func (c *AppConfig) GetPollInterval() time.Duration {
	return c.PollInterval
}

// StrictValidation reports whether uploads are validated by opening the
// document instead of only checking the magic header
func (c *AppConfig) StrictValidation() bool {
	return c.StrictPDFCheck
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSecondsOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
