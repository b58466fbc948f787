package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/store"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// WriteStoreError maps the store/domain error taxonomy onto HTTP. Anything
// unrecognized is a storage failure the user can only retry.
func WriteStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrDuplicateKey):
		WriteError(w, r, http.StatusConflict, "duplicate_key", err.Error())
	case errors.Is(err, store.ErrConflict):
		WriteError(w, r, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrInvalid):
		WriteError(w, r, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "storage_error", err.Error())
	}
}
