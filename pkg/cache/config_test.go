package cache_test

import (
	"testing"
	"time"

	"github.com/parley-labs/parley/pkg/cache"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := cache.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Addr != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.Addr)
	}
	if cfg.TTLDuration() != 15*time.Minute {
		t.Errorf("ttl = %v, want 15m", cfg.TTLDuration())
	}
	if cfg.Enabled {
		t.Error("cache should be disabled by default")
	}
}

func TestConfigFinalizeEnv(t *testing.T) {
	t.Setenv("PARLEY_TEST_CACHE_ENABLED", "true")
	t.Setenv("PARLEY_TEST_CACHE_ADDR", "redis.internal:6380")
	t.Setenv("PARLEY_TEST_CACHE_TTL", "1h")

	cfg := cache.Config{}
	err := cfg.Finalize(&cache.Env{
		Enabled: "PARLEY_TEST_CACHE_ENABLED",
		Addr:    "PARLEY_TEST_CACHE_ADDR",
		TTL:     "PARLEY_TEST_CACHE_TTL",
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if !cfg.Enabled {
		t.Error("expected env to enable cache")
	}
	if cfg.Addr != "redis.internal:6380" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.TTLDuration() != time.Hour {
		t.Errorf("ttl = %v, want 1h", cfg.TTLDuration())
	}
}

func TestConfigValidateTTL(t *testing.T) {
	cfg := cache.Config{Enabled: true, TTL: "forever"}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("expected error for malformed ttl")
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := cache.Config{Addr: "localhost:6379", TTL: "15m"}
	cfg.Merge(&cache.Config{Enabled: true, Addr: "redis.internal:6379"})

	if !cfg.Enabled {
		t.Error("expected overlay to enable cache")
	}
	if cfg.Addr != "redis.internal:6379" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.TTL != "15m" {
		t.Errorf("ttl = %q, want base value to survive", cfg.TTL)
	}
}
