package config_test

import (
	"testing"
	"time"

	"agriassist/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("GENAI_API_KEY", "test-api-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected default bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.ProviderTimeout != 30*time.Second {
		t.Fatalf("expected default provider timeout 30s, got %v", cfg.ProviderTimeout)
	}
	if cfg.GenAIModel == "" {
		t.Fatal("expected a default model")
	}
	if !cfg.CookieSecure {
		t.Fatal("expected secure cookies by default")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("GENAI_API_KEY", "test-api-key")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing SESSION_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "too-short")
	t.Setenv("GENAI_API_KEY", "test-api-key")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for short SESSION_SECRET")
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("GENAI_API_KEY", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing GENAI_API_KEY")
	}
}

func TestLoad_BcryptCostBounds(t *testing.T) {
	setRequiredEnv(t)

	for _, v := range []string{"3", "15", "abc"} {
		t.Setenv("BCRYPT_COST", v)
		if _, err := config.Load(); err == nil {
			t.Fatalf("expected error for BCRYPT_COST=%s", v)
		}
	}

	t.Setenv("BCRYPT_COST", "10")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}
