package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATA_BACKEND", "DATA_DIR", "FX_RATES", "MAX_UPLOAD_MB", "BASE_CURRENCY", "PORT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataBackend != BackendCSV {
		t.Errorf("expected csv backend, got %q", cfg.DataBackend)
	}
	if cfg.Port != "8080" || cfg.MaxUploadMB != 10 || cfg.BaseCurrency != "TWD" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TransactionsPath() != filepath.Join("data", "transactions.csv") {
		t.Errorf("unexpected transactions path %q", cfg.TransactionsPath())
	}
	if got := cfg.Converter().Rate("USD").String(); got != "32" {
		t.Errorf("expected default USD rate 32, got %s", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_BACKEND", "SQL")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("FX_RATES", "USD=30")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")
	t.Setenv("ASSETS_FILE", "/var/lib/ledger/assets.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataBackend != BackendSQL || cfg.DBDriver != DriverPostgres {
		t.Errorf("unexpected backend %q/%q", cfg.DataBackend, cfg.DBDriver)
	}
	if cfg.MaxUploadMB != 10 {
		t.Errorf("expected fallback upload limit, got %d", cfg.MaxUploadMB)
	}
	if cfg.FXRates["USD"].String() != "30" {
		t.Errorf("expected USD override, got %s", cfg.FXRates["USD"])
	}
	if cfg.AssetsPath() != "/var/lib/ledger/assets.csv" {
		t.Errorf("absolute asset path must be kept, got %q", cfg.AssetsPath())
	}
	if !strings.HasPrefix(cfg.PostgresURL(), "postgres://") {
		t.Errorf("unexpected postgres url %q", cfg.PostgresURL())
	}
}

func TestLoadRejectsBadRates(t *testing.T) {
	t.Setenv("FX_RATES", "USD=free")
	if _, err := Load(); err == nil {
		t.Error("expected error for malformed FX_RATES")
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := &Config{DataBackend: BackendSQL, DBDriver: "mysql"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"DB_DRIVER", "BASE_CURRENCY"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}

	cfg = &Config{DataBackend: "ftp", TransactionsFile: "t", AssetsFile: "a", BaseCurrency: "TWD"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "DATA_BACKEND") {
		t.Errorf("expected DATA_BACKEND error, got %v", err)
	}
}
