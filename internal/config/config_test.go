package config

import (
	"testing"
	"time"

	"github.com/tenpadel/catalogue/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/catalogue")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("app env = %q", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
	if cfg.FeedTimeout != 20*time.Second || cfg.FeedRetries != 2 {
		t.Fatalf("feed defaults: %+v", cfg)
	}
	if !cfg.FeedCircuitEnabled || cfg.FeedCircuitFailureCount != 3 {
		t.Fatalf("circuit defaults: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("log level = %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/catalogue")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ADMIN_TOKEN", " secret ")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("FEED_RETRIES", "0")
	t.Setenv("FEED_CIRCUIT_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppEnv != EnvProd || cfg.HTTPAddr != ":9090" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("admin token = %q", cfg.AdminToken)
	}
	if cfg.FeedTimeout != 5*time.Second || cfg.FeedRetries != 0 || cfg.FeedCircuitEnabled {
		t.Fatalf("feed overrides: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("log level = %v", cfg.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing db url", func(t *testing.T) {
		t.Setenv("DB_URL", "")
		if _, err := Load(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("bad app env", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://localhost/catalogue")
		t.Setenv("APP_ENV", "production-ish")
		if _, err := Load(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://localhost/catalogue")
		t.Setenv("FEED_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"info":    logging.LevelInfo,
		"warn":    logging.LevelWarn,
		"warning": logging.LevelWarn,
		"error":   logging.LevelError,
		"":        logging.LevelInfo,
		"bogus":   logging.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
