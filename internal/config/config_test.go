package config

import "testing"

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/superbill")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.RenderWidthPx != 794 {
		t.Errorf("expected default render width 794, got %d", cfg.RenderWidthPx)
	}
	if cfg.RenderScale != 2 {
		t.Errorf("expected default render scale 2, got %d", cfg.RenderScale)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
}

func TestClinicSnapshot(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/superbill")
	t.Setenv("CLINIC_NAME", "Lakeside Physical Therapy")
	t.Setenv("PROVIDER_NAME", "Dr. Alex Rivera")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clinic := cfg.Clinic()
	if clinic.Name != "Lakeside Physical Therapy" {
		t.Errorf("expected clinic name to pass through, got %q", clinic.Name)
	}
	if clinic.Provider != "Dr. Alex Rivera" {
		t.Errorf("expected provider name to pass through, got %q", clinic.Provider)
	}
}
