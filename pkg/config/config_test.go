package config

import (
	"testing"
	"time"

	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.DB.InMemory() {
		t.Errorf("DB.InMemory() = false, want true")
	}
	if cfg.Banner.InitialDelay != 2*time.Second {
		t.Errorf("Banner.InitialDelay = %v, want 2s", cfg.Banner.InitialDelay)
	}
	if cfg.Banner.Max != 3 {
		t.Errorf("Banner.Max = %d, want 3", cfg.Banner.Max)
	}
	if cfg.Events.URL != "" {
		t.Errorf("Events.URL = %q, want empty", cfg.Events.URL)
	}
}

func TestLoadRejectsDefaultKeyInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SIGNING_KEY", "leadropersecretkey")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want error for default signing key")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "x")
	t.Setenv("TEST_LIST", " a, ,b ")
	t.Setenv("TEST_LEVEL", "error")
	t.Setenv("TEST_BOOL", "false")

	if got := getEnvAsInt("TEST_INT", 1); got != 42 {
		t.Errorf("getEnvAsInt = %d, want 42", got)
	}
	if got := getEnvAsInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt fallback = %d, want 7", got)
	}
	if got := getEnvAsList("TEST_LIST", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("getEnvAsList = %v, want [a b]", got)
	}
	if got := getEnvAsLogLevel("TEST_LEVEL", logger.Info); got != logger.Error {
		t.Errorf("getEnvAsLogLevel = %v, want %v", got, logger.Error)
	}
	if got := getEnvAsBool("TEST_BOOL", true); got {
		t.Errorf("getEnvAsBool = true, want false")
	}
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "crm", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=crm sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
