package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ONTOLOGY_HUB_PORT", "")
	t.Setenv("TEMPORAL_TASK_QUEUE", "")

	cfg := Load()

	if cfg.Port != "4020" {
		t.Errorf("expected default port 4020, got %s", cfg.Port)
	}
	if cfg.MigrationsPath != "./migrations" {
		t.Errorf("expected default migrations path ./migrations, got %s", cfg.MigrationsPath)
	}
	if cfg.TemporalTaskQueue != "ontology" {
		t.Errorf("expected default task queue ontology, got %s", cfg.TemporalTaskQueue)
	}
	if cfg.AuthDebug {
		t.Error("expected auth debug to default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ONTOLOGY_HUB_PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://localhost/ontology")
	t.Setenv("ONTOLOGY_AUTH_DEBUG", "true")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/ontology" {
		t.Errorf("unexpected database URL %s", cfg.DatabaseURL)
	}
	if !cfg.AuthDebug {
		t.Error("expected auth debug true")
	}
}

func TestDatatypesUnset(t *testing.T) {
	cfg := &Config{}

	datatypes, err := cfg.Datatypes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if datatypes != nil {
		t.Errorf("expected nil vocabulary when unconfigured, got %v", datatypes)
	}
}

func TestDatatypesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datatypes.yaml")
	content := "datatypes:\n  - Text\n  - Number\n  - Custom thing\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{DatatypesPath: path}

	datatypes, err := cfg.Datatypes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Text", "Number", "Custom thing"}
	if len(datatypes) != len(want) {
		t.Fatalf("expected %d datatypes, got %d", len(want), len(datatypes))
	}
	for i, dt := range want {
		if datatypes[i] != dt {
			t.Errorf("datatype %d: expected %q, got %q", i, dt, datatypes[i])
		}
	}
}

func TestDatatypesEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datatypes.yaml")
	if err := os.WriteFile(path, []byte("datatypes: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{DatatypesPath: path}

	if _, err := cfg.Datatypes(); err == nil {
		t.Error("expected error for empty datatype list")
	}
}

func TestDatatypesMissingFile(t *testing.T) {
	cfg := &Config{DatatypesPath: filepath.Join(t.TempDir(), "nope.yaml")}

	if _, err := cfg.Datatypes(); err == nil {
		t.Error("expected error for missing vocabulary file")
	}
}
