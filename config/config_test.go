package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	if cfg.Web.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Web.Port)
	}
	if !cfg.Booking.RejectOverlap {
		t.Fatalf("expected reject_overlap enabled by default")
	}
	if cfg.Database.Type != "postgres" {
		t.Fatalf("expected postgres, got %q", cfg.Database.Type)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "estatehub.yml")
	content := `
web:
  port: 9000
database:
  type: SQLite
  name: ${ESTATEHUB_TEST_DBNAME}
booking:
  reject_overlap: false
`
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ESTATEHUB_TEST_DBNAME", "/tmp/estate.db")
	t.Setenv("ESTATEHUB_WEB_JWT_EXPIRE", "48")
	t.Setenv("ESTATEHUB_WEB_PORT", "not-a-number")

	cfg := LoadConfig(file)
	if cfg.Web.Port != 9000 {
		t.Errorf("expected port from file, got %d", cfg.Web.Port)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("expected normalised db type, got %q", cfg.Database.Type)
	}
	if cfg.Database.Name != "/tmp/estate.db" {
		t.Errorf("expected expanded db name, got %q", cfg.Database.Name)
	}
	if cfg.Booking.RejectOverlap {
		t.Errorf("expected reject_overlap disabled by file")
	}
	if cfg.Web.JwtExpire != 48 {
		t.Errorf("expected jwt expire from env, got %d", cfg.Web.JwtExpire)
	}
	// defaults must stay untouched
	if DefaultAppConfig.Web.Port != 8080 {
		t.Errorf("default config mutated")
	}
}
