package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "")
		t.Setenv("RECONCILE_UPDATE_POLICY", "")
		t.Setenv("AUTH_REQUIRED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.DBDriver != "postgres" {
			t.Errorf("expected postgres driver, got %s", cfg.DBDriver)
		}
		if cfg.UpdatePolicy != UpdatePolicyInverseOfNew {
			t.Errorf("expected inverse-of-new policy, got %s", cfg.UpdatePolicy)
		}
		if cfg.AuthRequired {
			t.Error("expected auth to be off by default")
		}
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("expected 24h expiry, got %s", cfg.JWTExpirationDur)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("RECONCILE_UPDATE_POLICY", "reapply")
		t.Setenv("AUTH_REQUIRED", "true")
		t.Setenv("SHUTDOWN_TIMEOUT", "3s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DBDriver != "sqlite" {
			t.Errorf("expected sqlite driver, got %s", cfg.DBDriver)
		}
		if cfg.UpdatePolicy != UpdatePolicyReapply {
			t.Errorf("expected reapply policy, got %s", cfg.UpdatePolicy)
		}
		if !cfg.AuthRequired {
			t.Error("expected auth to be required")
		}
		if cfg.ShutdownTimeout != 3*time.Second {
			t.Errorf("expected 3s shutdown timeout, got %s", cfg.ShutdownTimeout)
		}
	})

	t.Run("bad_duration_falls_back", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_IN", "soon")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("expected fallback to 24h, got %s", cfg.JWTExpirationDur)
		}
	})

	t.Run("unknown_policy", func(t *testing.T) {
		t.Setenv("RECONCILE_UPDATE_POLICY", "guess")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for unknown update policy")
		}
	})

	t.Run("unknown_driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for unknown driver")
		}
	})
}
