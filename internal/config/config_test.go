package config

import (
	"testing"
	"time"
)

const defaultMaxFileSize int64 = 50 * 1024 * 1024

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_PORT", "TEMP_DIR", "MAX_FILE_SIZE", "LOG_LEVEL",
		"DEEPL_API_KEY", "DEEPL_API_URL", "DEEPL_POLL_INTERVAL", "STRICT_VALIDATION",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetTempDir() != "./temp" {
		t.Fatalf("expected default temp dir ./temp, got %s", cfg.GetTempDir())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetDeepLAPIKey() != "" {
		t.Fatalf("expected default deepl key empty, got %s", cfg.GetDeepLAPIKey())
	}
	if cfg.GetDeepLAPIURL() != "https://api-free.deepl.com" {
		t.Fatalf("expected default deepl url, got %s", cfg.GetDeepLAPIURL())
	}
	if cfg.GetPollInterval() != 2*time.Second {
		t.Fatalf("expected default poll interval 2s, got %s", cfg.GetPollInterval())
	}
	if cfg.StrictValidation() {
		t.Fatalf("expected strict validation disabled by default")
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("TEMP_DIR", "/tmp/pdf-translate")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEEPL_API_KEY", "test-key")
	t.Setenv("DEEPL_API_URL", "http://localhost:9999")
	t.Setenv("DEEPL_POLL_INTERVAL", "5")
	t.Setenv("STRICT_VALIDATION", "true")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetTempDir() != "/tmp/pdf-translate" {
		t.Fatalf("expected temp dir /tmp/pdf-translate, got %s", cfg.GetTempDir())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetDeepLAPIKey() != "test-key" {
		t.Fatalf("expected deepl key test-key, got %s", cfg.GetDeepLAPIKey())
	}
	if cfg.GetDeepLAPIURL() != "http://localhost:9999" {
		t.Fatalf("expected deepl url http://localhost:9999, got %s", cfg.GetDeepLAPIURL())
	}
	if cfg.GetPollInterval() != 5*time.Second {
		t.Fatalf("expected poll interval 5s, got %s", cfg.GetPollInterval())
	}
	if !cfg.StrictValidation() {
		t.Fatalf("expected strict validation enabled")
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("DEEPL_POLL_INTERVAL", "zero")
	t.Setenv("STRICT_VALIDATION", "maybe")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetPollInterval() != 2*time.Second {
		t.Fatalf("expected default poll interval 2s, got %s", cfg.GetPollInterval())
	}
	if cfg.StrictValidation() {
		t.Fatalf("expected strict validation to fall back to disabled")
	}
}
