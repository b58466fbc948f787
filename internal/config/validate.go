package config

import "fmt"

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills gaps from defaults and reports anything
// suspicious without failing the load. Used by the PUT /config path so
// the shell can show warnings before saving.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation
	def := Default()

	if out.App.Port == 0 {
		out.App.Port = def.App.Port
	}
	if out.Board.AutoRefreshSeconds == 0 {
		out.Board.AutoRefreshSeconds = def.Board.AutoRefreshSeconds
	}
	if out.Validation.NotesMaxChars == 0 {
		out.Validation.NotesMaxChars = def.Validation.NotesMaxChars
	}
	if out.Query.CacheSize == 0 {
		out.Query.CacheSize = def.Query.CacheSize
	}
	if out.Query.CacheTTLSeconds == 0 {
		out.Query.CacheTTLSeconds = def.Query.CacheTTLSeconds
	}
	if out.Limits.WriteRPS == 0 {
		out.Limits.WriteRPS = def.Limits.WriteRPS
	}
	if out.Limits.WriteBurst == 0 {
		out.Limits.WriteBurst = def.Limits.WriteBurst
	}
	if out.Maintenance.CheckpointSeconds == 0 {
		out.Maintenance.CheckpointSeconds = def.Maintenance.CheckpointSeconds
	}

	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535, got %d", out.App.Port)
	}
	if out.Board.AutoRefreshSeconds < 5 {
		res.addWarn("board.auto_refresh_seconds is very low (%d); the board will recompute constantly.", out.Board.AutoRefreshSeconds)
	}
	if out.Validation.NotesMaxChars > 100000 {
		res.addWarn("validation.notes_max_chars is very high (%d).", out.Validation.NotesMaxChars)
	}
	if out.Query.CacheTTLSeconds > 3600 {
		res.addWarn("query.cache_ttl_seconds over an hour defeats the relative date buckets.")
	}

	return out, res
}
