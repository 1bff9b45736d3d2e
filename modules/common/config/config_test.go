package config

import (
	"strings"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ARK_API_KEY", "ARK_BASE_URL", "ARK_MODEL", "ARK_TIMEOUT_SECONDS",
		"MAX_FILE_SIZE_MB", "GEMINI_API_KEY", "GEMINI_MODEL",
		"REDIS_HOST", "REDIS_PORT", "REDIS_USERNAME", "REDIS_PASSWORD", "REDIS_USE_TLS",
		"PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.ArkBaseURL != DefaultArkBaseURL {
		t.Errorf("ArkBaseURL = %q", cfg.ArkBaseURL)
	}
	if cfg.ArkModel != DefaultArkModel {
		t.Errorf("ArkModel = %q", cfg.ArkModel)
	}
	if cfg.ArkTimeoutSeconds != 60 {
		t.Errorf("ArkTimeoutSeconds = %d, want 60", cfg.ArkTimeoutSeconds)
	}
	if cfg.MaxFileSizeMB != 10 {
		t.Errorf("MaxFileSizeMB = %d, want 10", cfg.MaxFileSizeMB)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.RedisHost != "" {
		t.Errorf("RedisHost = %q, want empty so the optional dial is skipped", cfg.RedisHost)
	}
}

func TestLoadConfigMissingCredentialNotFatal(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed without ARK_API_KEY: %v", err)
	}
	if cfg.CredentialConfigured() {
		t.Error("CredentialConfigured() = true without ARK_API_KEY")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ARK_API_KEY", "test-credential")
	t.Setenv("ARK_TIMEOUT_SECONDS", "30")
	t.Setenv("MAX_FILE_SIZE_MB", "5")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.CredentialConfigured() {
		t.Error("CredentialConfigured() = false with ARK_API_KEY set")
	}
	if cfg.ArkTimeoutSeconds != 30 {
		t.Errorf("ArkTimeoutSeconds = %d, want 30", cfg.ArkTimeoutSeconds)
	}
	if cfg.MaxFileSizeMB != 5 {
		t.Errorf("MaxFileSizeMB = %d, want 5", cfg.MaxFileSizeMB)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
}

func TestLoadConfigInvalidInt(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ARK_TIMEOUT_SECONDS", "sixty")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-integer ARK_TIMEOUT_SECONDS")
	} else if !strings.Contains(err.Error(), "ARK_TIMEOUT_SECONDS") {
		t.Errorf("error %q does not name the variable", err)
	}
}

func TestLoadConfigInvalidRange(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MAX_FILE_SIZE_MB", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for MAX_FILE_SIZE_MB = 0")
	}
}

func TestMaxFileSizeBytes(t *testing.T) {
	cfg := &Config{MaxFileSizeMB: 10}
	if got := cfg.MaxFileSizeBytes(); got != 10*1024*1024 {
		t.Errorf("MaxFileSizeBytes() = %d", got)
	}
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "redis.example.com", RedisPort: "6380"}
	if got := cfg.GetRedisAddr(); got != "redis.example.com:6380" {
		t.Errorf("GetRedisAddr() = %q", got)
	}
}
