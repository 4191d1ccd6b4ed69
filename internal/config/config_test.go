package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("expected default gemini model, got %q", cfg.GeminiModel)
	}
	if cfg.GeminiTimeout != 60*time.Second {
		t.Fatalf("expected default gemini timeout, got %v", cfg.GeminiTimeout)
	}
	if cfg.KeyBlockStore != "memory" {
		t.Fatalf("expected memory key block store")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("SCHEDULING_CONFIG_PATH", "/etc/venturo/scheduling.yml")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("GEMINI_RPM", "30")
	t.Setenv("GEMINI_KEY_BLOCK_STORE", "redis")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" || cfg.RedisPassword != "pw" {
		t.Fatalf("expected override redis")
	}
	if cfg.SchedulingConfigPath != "/etc/venturo/scheduling.yml" {
		t.Fatalf("expected override scheduling config path")
	}
	if cfg.GeminiTimeout != 15*time.Second {
		t.Fatalf("expected override timeout, got %v", cfg.GeminiTimeout)
	}
	if cfg.GeminiRPM != 30 {
		t.Fatalf("expected override rpm")
	}
	if cfg.KeyBlockStore != "redis" {
		t.Fatalf("expected override block store")
	}
}

func TestLoadGeminiKeysSkipsEmpty(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-one")
	t.Setenv("GEMINI_API_KEY_2", "")
	t.Setenv("GEMINI_API_KEY_3", "key-three")

	cfg := Load()
	if len(cfg.GeminiAPIKeys) != 2 {
		t.Fatalf("expected 2 keys, got %v", cfg.GeminiAPIKeys)
	}
	if cfg.GeminiAPIKeys[0] != "key-one" || cfg.GeminiAPIKeys[1] != "key-three" {
		t.Fatalf("unexpected key order: %v", cfg.GeminiAPIKeys)
	}
}
