package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Validation.NotesMaxChars < 0 {
		errs = append(errs, "validation.notes_max_chars must be >= 0")
	}
	if cfg.Query.CacheSize <= 0 {
		errs = append(errs, "query.cache_size must be > 0")
	}
	if cfg.Query.CacheTTLSeconds <= 0 {
		errs = append(errs, "query.cache_ttl_seconds must be > 0")
	}
	if cfg.Limits.WriteRPS <= 0 {
		errs = append(errs, "limits.write_rps must be > 0")
	}
	if cfg.Limits.WriteBurst <= 0 {
		errs = append(errs, "limits.write_burst must be > 0")
	}
	if cfg.Maintenance.CheckpointSeconds <= 0 {
		errs = append(errs, "maintenance.checkpoint_seconds must be > 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

// SaveAtomic validates, then writes via tmp+rename keeping the previous
// file as .bak.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
