package config

import (
    "testing"
    "time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
    for _, k := range []string{
        "RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL_TOKENS",
        "RATE_LIMIT_REFILL_INTERVAL", "RATE_LIMIT_TTL", "RATE_LIMIT_KEY_STRATEGY",
        "RATE_LIMIT_BURST", "RATE_LIMIT_REFILL_EVERY",
    } {
        t.Setenv(k, "")
    }

    cfg := LoadRateLimitConfig()

    if !cfg.Enabled {
        t.Fatal("limiter should default to enabled")
    }
    if cfg.Capacity != 60 {
        t.Fatalf("capacity = %d, want 60", cfg.Capacity)
    }
    if cfg.RefillTokens != 1 {
        t.Fatalf("refill tokens = %d, want 1", cfg.RefillTokens)
    }
    if cfg.RefillInterval != time.Second {
        t.Fatalf("refill interval = %s, want 1s", cfg.RefillInterval)
    }
    if cfg.KeyStrategy != "ip_user_route" {
        t.Fatalf("key strategy = %q, want ip_user_route", cfg.KeyStrategy)
    }
}

func TestLoadRateLimitConfigClampsTTL(t *testing.T) {
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
    t.Setenv("RATE_LIMIT_TTL", "30s")

    cfg := LoadRateLimitConfig()
    if want := 5 * time.Minute; cfg.TTL != want {
        t.Fatalf("ttl = %s, want clamp to %s", cfg.TTL, want)
    }
}

func TestLoadRateLimitConfigBurstOverride(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "100")
    t.Setenv("RATE_LIMIT_BURST", "7")

    cfg := LoadRateLimitConfig()
    if cfg.Capacity != 7 {
        t.Fatalf("capacity = %d, want burst override 7", cfg.Capacity)
    }
}

func TestLoadCacheConfigMethods(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head")

    cfg := LoadCacheConfig()
    if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
        t.Fatalf("methods = %v, want GET and HEAD", cfg.Methods)
    }
    if cfg.Methods["POST"] {
        t.Fatal("POST should not be cacheable")
    }
}
