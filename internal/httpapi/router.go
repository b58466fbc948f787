package httpapi

import (
	"net/http"

	"jobtrack-engine/internal/board"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs
// srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Applications CRUD + derived list view
	ah := ApplicationsHandler{Store: d.Store, Hub: d.Hub, Cache: d.Cache, Now: d.Now}
	mux.HandleFunc("/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ah.List,
		http.MethodPost: ah.Create,
	}))
	mux.HandleFunc("/applications/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    ah.GetByPath,    // expects /applications/{id}
		http.MethodPut:    ah.PutByPath,    // edit-submit merge
		http.MethodDelete: ah.DeleteByPath, // irreversible
	}))

	// Kanban board
	bh := BoardHandler{Store: d.Store, Hub: d.Hub, Board: board.Handler{Store: d.Store}}
	mux.HandleFunc("/board", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.Get,
	}))
	mux.HandleFunc("/board/move", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: bh.Move,
	}))

	// Import / export
	th := TransferHandler{Store: d.Store, Hub: d.Hub}
	mux.HandleFunc("/export", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: th.Export,
	}))
	mux.HandleFunc("/import", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: th.Import,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// DB maintenance
	dbh := DBHandler{Store: d.Store}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dbh.Checkpoint,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
