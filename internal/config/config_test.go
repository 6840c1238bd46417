package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != defaultAppName {
		t.Fatalf("expected default app name, got %s", cfg.AppName)
	}
	if cfg.ResendSeconds != defaultResendSecs {
		t.Fatalf("expected default resend cooldown, got %d", cfg.ResendSeconds)
	}
	if cfg.ShutdownPeriod != defaultShutdownDelay {
		t.Fatalf("expected default shutdown period, got %s", cfg.ShutdownPeriod)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Address())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("OTP_RESEND_SECONDS", "45")
	t.Setenv("OTP_ADVANCE_DELAY", "1s")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Address() != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Address())
	}
	if cfg.ResendSeconds != 45 {
		t.Fatalf("expected 45, got %d", cfg.ResendSeconds)
	}
	if cfg.AdvanceDelay != time.Second {
		t.Fatalf("expected 1s advance delay, got %s", cfg.AdvanceDelay)
	}
	if cfg.ShutdownPeriod != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.ShutdownPeriod)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("OTP_RESEND_SECONDS", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric cooldown")
	}
}
