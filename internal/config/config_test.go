package config

import (
	"errors"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_NAME", "shutterbid")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Errorf("access expiry = %v, want 15m", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Marketplace.RequireOpenJob {
		t.Error("RequireOpenJob must default to off")
	}
	if cfg.Scheduler.ExpirySweepInterval != time.Hour {
		t.Errorf("sweep interval = %v, want 1h", cfg.Scheduler.ExpirySweepInterval)
	}
	if cfg.Redis.ListTTL != 60*time.Second {
		t.Errorf("list TTL = %v, want 60s", cfg.Redis.ListTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BIDS_REQUIRE_OPEN_JOB", "true")
	t.Setenv("EXPIRY_SWEEP_INTERVAL", "10m")
	t.Setenv("DB_POOL_MAX_CONNS", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Marketplace.RequireOpenJob {
		t.Error("RequireOpenJob override not applied")
	}
	if cfg.Scheduler.ExpirySweepInterval != 10*time.Minute {
		t.Errorf("sweep interval = %v, want 10m", cfg.Scheduler.ExpirySweepInterval)
	}
	if cfg.Database.PoolMaxConns != 25 {
		t.Errorf("pool max conns = %d, want 25", cfg.Database.PoolMaxConns)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_SECRET", "")

	if _, err := Load(); !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("got %v, want missing-env error", err)
	}
}

func TestLoadRejectsGarbageValues(t *testing.T) {
	setRequired(t)
	t.Setenv("EXPIRY_SWEEP_INTERVAL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unparseable duration")
	}
}
