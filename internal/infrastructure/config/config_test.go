package config_test

import (
	"testing"

	"github.com/iho/payengine/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.Workers != 0 {
		t.Fatalf("expected default workers 0, got %d", cfg.Workers)
	}

	if cfg.LockedAcceptsDisputes {
		t.Fatalf("expected locked accounts to reject disputes by default")
	}

	if !cfg.WithdrawalDisputes {
		t.Fatalf("expected withdrawal disputes enabled by default")
	}

	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Fatalf("unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogFormat)
	}

	if cfg.EventBuffer != 1024 {
		t.Fatalf("expected default event buffer 1024, got %d", cfg.EventBuffer)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PAYENGINE_WORKERS", "4")
	t.Setenv("PAYENGINE_LOCKED_ACCEPTS_DISPUTES", "true")
	t.Setenv("PAYENGINE_WITHDRAWAL_DISPUTES", "false")
	t.Setenv("PAYENGINE_LOG_LEVEL", "debug")
	t.Setenv("PAYENGINE_LOG_FORMAT", "json")
	t.Setenv("PAYENGINE_EVENT_BUFFER", "16")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.Workers != 4 {
		t.Fatalf("expected workers override, got %d", cfg.Workers)
	}

	if !cfg.LockedAcceptsDisputes || cfg.WithdrawalDisputes {
		t.Fatalf("expected policy overrides, got %+v", cfg)
	}

	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("expected logging overrides, got %s/%s", cfg.LogLevel, cfg.LogFormat)
	}

	if cfg.EventBuffer != 16 {
		t.Fatalf("expected event buffer override, got %d", cfg.EventBuffer)
	}
}
