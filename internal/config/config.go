package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Board struct {
		AutoRefreshSeconds int `yaml:"auto_refresh_seconds"`
	} `yaml:"board"`

	Validation struct {
		NotesMaxChars     int  `yaml:"notes_max_chars"`
		RejectFutureDates bool `yaml:"reject_future_dates"`
	} `yaml:"validation"`

	Query struct {
		CacheSize       int `yaml:"cache_size"`
		CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	} `yaml:"query"`

	Limits struct {
		WriteRPS   float64 `yaml:"write_rps"`
		WriteBurst int     `yaml:"write_burst"`
	} `yaml:"limits"`

	Maintenance struct {
		CheckpointSeconds int `yaml:"checkpoint_seconds"`
	} `yaml:"maintenance"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Default returns the config the engine ships with; bootstrap writes it
// out when the user has none yet.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.Board.AutoRefreshSeconds = 30
	cfg.Validation.NotesMaxChars = 2000
	cfg.Validation.RejectFutureDates = true
	cfg.Query.CacheSize = 128
	cfg.Query.CacheTTLSeconds = 60
	cfg.Limits.WriteRPS = 20
	cfg.Limits.WriteBurst = 40
	cfg.Maintenance.CheckpointSeconds = 300
	return cfg
}
