package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"jobtrack-engine/internal/config"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, _ := h.CfgVal.Load().(config.Config)
	writeJSON(w, cfg)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"path": h.UserCfgPath})
}

// Put normalizes, validates, persists atomically, then swaps the live
// config. Validation errors come back with the proposed config so the
// shell can show them inline.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var next config.Config
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}

	normalized, res := config.NormalizeAndValidate(next)
	if !res.OK() {
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"config":     normalized,
			"validation": res,
		})
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "config_save_failed", err.Error())
		return
	}

	h.CfgVal.Store(normalized)
	writeJSON(w, map[string]any{
		"config":     normalized,
		"validation": res,
	})
}
