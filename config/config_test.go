package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HOSPITAL_URLS", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("HOSPITAL_READ_TIMEOUT", "")
	t.Setenv("HOSPITAL_PAY_TIMEOUT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JWT.Expiry != 7*24*time.Hour {
		t.Errorf("expected 7d token expiry, got %s", cfg.JWT.Expiry)
	}
	if cfg.Hospital.ReadTimeout != 10*time.Second {
		t.Errorf("expected 10s read timeout, got %s", cfg.Hospital.ReadTimeout)
	}
	if cfg.Hospital.PayTimeout != 15*time.Second {
		t.Errorf("expected 15s pay timeout, got %s", cfg.Hospital.PayTimeout)
	}
	if cfg.Session.CookieName != "token" {
		t.Errorf("expected cookie name token, got %q", cfg.Session.CookieName)
	}
	if cfg.Session.CookieSecure {
		t.Error("expected insecure cookie outside production")
	}
	if len(cfg.Hospital.URLs) != len(DefaultHospitalURLs) {
		t.Errorf("expected default hospital table, got %v", cfg.Hospital.URLs)
	}
}

func TestLoadConfig_HospitalURLsFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HOSPITAL_URLS", `{"hospc":"https://hospc.example.com"}`)
	t.Setenv("HOSPITAL_PAY_TIMEOUT", "20s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.Hospital.URLs["hospc"]; got != "https://hospc.example.com" {
		t.Errorf("expected hospc url from env, got %q", got)
	}
	if _, ok := cfg.Hospital.URLs["hospa"]; ok {
		t.Error("expected defaults to be replaced by HOSPITAL_URLS")
	}
	if cfg.Hospital.PayTimeout != 20*time.Second {
		t.Errorf("expected 20s pay timeout, got %s", cfg.Hospital.PayTimeout)
	}
	if !cfg.Session.CookieSecure {
		t.Error("expected secure cookie in production")
	}
}

func TestHospitalDirectoryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hospitals.yaml")
	content := "hospitals:\n  hospa: https://a.example.com\n  hospb: https://b.example.com\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	f, err := OpenHospitalDirectoryFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hospitals := f.Hospitals()
	if len(hospitals) != 2 {
		t.Fatalf("expected 2 hospitals, got %d", len(hospitals))
	}
	if hospitals["hospb"] != "https://b.example.com" {
		t.Errorf("unexpected hospb url %q", hospitals["hospb"])
	}
}

func TestOpenHospitalDirectoryFile_Missing(t *testing.T) {
	if _, err := OpenHospitalDirectoryFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing directory file")
	}
}
