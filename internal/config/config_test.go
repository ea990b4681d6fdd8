package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Set some test environment variables
	if err := os.Setenv("SERVER_PORT", "9090"); err != nil {
		t.Fatalf("Failed to set SERVER_PORT: %v", err)
	}
	if err := os.Setenv("REDIS_HOST", "testhost"); err != nil {
		t.Fatalf("Failed to set REDIS_HOST: %v", err)
	}
	if err := os.Setenv("CACHE_PERSONA_TTL", "90s"); err != nil {
		t.Fatalf("Failed to set CACHE_PERSONA_TTL: %v", err)
	}
	if err := os.Setenv("PROVIDER_RPS", "2.5"); err != nil {
		t.Fatalf("Failed to set PROVIDER_RPS: %v", err)
	}
	defer func() {
		_ = os.Unsetenv("SERVER_PORT")
		_ = os.Unsetenv("REDIS_HOST")
		_ = os.Unsetenv("CACHE_PERSONA_TTL")
		_ = os.Unsetenv("PROVIDER_RPS")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %v, want %v", cfg.Server.Port, "9090")
	}

	if cfg.Redis.Host != "testhost" {
		t.Errorf("Redis.Host = %v, want %v", cfg.Redis.Host, "testhost")
	}

	if cfg.Cache.PersonaTTL != 90*time.Second {
		t.Errorf("Cache.PersonaTTL = %v, want %v", cfg.Cache.PersonaTTL, 90*time.Second)
	}

	if cfg.Provider.RequestsPerSecond != 2.5 {
		t.Errorf("Provider.RequestsPerSecond = %v, want 2.5", cfg.Provider.RequestsPerSecond)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "REDIS_HOST", "NARRATIVE_API_KEY", "RATE_LIMIT_RPS",
	} {
		_ = os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %v", cfg.Server.Port)
	}
	if cfg.Narrative.APIKey != "" {
		t.Errorf("Expected narrative collaborator disabled by default, got %q", cfg.Narrative.APIKey)
	}
	if cfg.RateLimit.RequestsPerSecond != 10 {
		t.Errorf("Expected default rate limit 10, got %d", cfg.RateLimit.RequestsPerSecond)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns environment variable when set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when environment variable not set",
			key:          "TEST_KEY_UNSET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			if got := getEnv(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "45s")
	defer os.Unsetenv("TEST_DURATION")

	if got := getEnvAsDuration("TEST_DURATION", time.Minute); got != 45*time.Second {
		t.Errorf("getEnvAsDuration() = %v, want 45s", got)
	}

	// Malformed values fall back to the default.
	os.Setenv("TEST_DURATION", "not-a-duration")
	if got := getEnvAsDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("getEnvAsDuration() = %v, want fallback 1m", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	defer os.Unsetenv("TEST_INT")

	if got := getEnvAsInt("TEST_INT", 7); got != 42 {
		t.Errorf("getEnvAsInt() = %v, want 42", got)
	}

	os.Setenv("TEST_INT", "abc")
	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt() = %v, want fallback 7", got)
	}
}
