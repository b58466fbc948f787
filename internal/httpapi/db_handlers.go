package httpapi

import (
	"net"
	"net/http"

	"jobtrack-engine/internal/store"
)

type DBHandler struct {
	Store *store.Store
}

// Checkpoint flushes the WAL on demand; the shell calls it before the
// host snapshots or backs up the data dir. Localhost only.
func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host != "127.0.0.1" && host != "::1" && host != "localhost" {
		WriteError(w, r, http.StatusForbidden, "forbidden", "local requests only")
		return
	}

	if err := h.Store.Checkpoint(r.Context()); err != nil {
		WriteStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
