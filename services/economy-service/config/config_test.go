package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	env := "DB_HOST=db\nDB_PORT=5432\nDB_USER=hive\nDB_PASSWORD=secret\nDB_NAME=economy\nREDIS_ADDR=redis:6379\n"
	if err := os.WriteFile(filepath.Join(dir, "app.env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GRPCPort != ":50055" || cfg.StoreDriver != "postgres" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	want := "host=db user=hive password=secret dbname=economy port=5432 sslmode=disable"
	if cfg.DSN() != want {
		t.Errorf("DSN = %q", cfg.DSN())
	}
}

func TestLoadConfigEnvOverridesAndValidation(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("GRPC_PORT", ":6000")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig without file: %v", err)
	}
	if cfg.StoreDriver != "memory" || cfg.GRPCPort != ":6000" {
		t.Errorf("env not applied: %+v", cfg)
	}

	t.Setenv("STORE_DRIVER", "sqlite")
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Error("expected error for unknown driver")
	}
}
