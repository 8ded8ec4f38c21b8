package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SHIPPING_FEE", "")
	t.Setenv("TAX_RATE", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.ShippingFee != 5.99 {
		t.Fatalf("expected default shipping fee, got %v", cfg.ShippingFee)
	}
	if cfg.TaxRate != 0.08 {
		t.Fatalf("expected default tax rate, got %v", cfg.TaxRate)
	}
	if cfg.AuthLatency != 500*time.Millisecond {
		t.Fatalf("expected default auth latency, got %s", cfg.AuthLatency)
	}
	if cfg.OrderResetDelay != 3*time.Second {
		t.Fatalf("expected default order reset delay, got %s", cfg.OrderResetDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("SHIPPING_FEE", "7.49")
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("AUTH_LATENCY", "10ms")
	t.Setenv("LEGACY_AUTH_EMAIL", "owner@choppers.salon")
	t.Setenv("LEGACY_AUTH_PASSWORD", "legacy-secret")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.ShippingFee != 7.49 {
		t.Fatalf("expected shipping override, got %v", cfg.ShippingFee)
	}
	if cfg.TaxRate != 0.1 {
		t.Fatalf("expected tax override, got %v", cfg.TaxRate)
	}
	if cfg.AuthLatency != 10*time.Millisecond {
		t.Fatalf("expected auth latency override, got %s", cfg.AuthLatency)
	}
	if cfg.LegacyAuthEmail != "owner@choppers.salon" {
		t.Fatalf("expected legacy email override, got %s", cfg.LegacyAuthEmail)
	}
	if cfg.LegacyAuthPassword != "legacy-secret" {
		t.Fatalf("expected legacy password override, got %s", cfg.LegacyAuthPassword)
	}
}
