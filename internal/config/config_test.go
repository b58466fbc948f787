package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureUserConfigCreatesDefaults(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	if err != nil {
		t.Fatalf("EnsureUserConfig() = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("config landed at %s", path)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg != Default() {
		t.Errorf("bootstrap config differs from defaults: %+v", cfg)
	}

	// second call must not rewrite the file
	if err := os.WriteFile(path, []byte("app:\n  port: 40000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureUserConfig(dir); err != nil {
		t.Fatalf("second EnsureUserConfig() = %v", err)
	}
	cfg, _ = Load(path)
	if cfg.App.Port != 40000 {
		t.Error("bootstrap clobbered an existing config")
	}
}

func TestValidateCatchesBadValues(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Query.CacheSize = 0

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "app.port") || !strings.Contains(err.Error(), "query.cache_size") {
		t.Errorf("error misses fields: %v", err)
	}
}

func TestNormalizeFillsGapsAndWarns(t *testing.T) {
	var cfg Config
	cfg.App.Port = 40000
	cfg.Board.AutoRefreshSeconds = 2

	out, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if out.App.Port != 40000 {
		t.Error("explicit value overridden")
	}
	if out.Query.CacheSize != Default().Query.CacheSize {
		t.Error("gap not filled from defaults")
	}
	if len(res.Warnings) == 0 {
		t.Error("very low auto refresh should warn")
	}
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := Default()
	cfg.App.Port = 40123
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic() = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got != cfg {
		t.Errorf("round trip: %+v", got)
	}

	// a second save keeps the previous file as .bak
	cfg.App.Port = 40124
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("second SaveAtomic() = %v", err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("no backup kept: %v", err)
	}
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Limits.WriteRPS = -1
	if err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg); err == nil {
		t.Fatal("invalid config saved")
	}
}
