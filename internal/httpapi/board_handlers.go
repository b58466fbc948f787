package httpapi

import (
	"encoding/json"
	"net/http"

	"jobtrack-engine/internal/board"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type BoardHandler struct {
	Store *store.Store
	Hub   *events.Hub
	Board board.Handler
}

// Get returns the six ordered kanban columns.
func (h BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.GetAll(r.Context())
	if err != nil {
		WriteStoreError(w, r, err)
		return
	}

	cols := board.Columns(records)
	writeJSON(w, map[string]any{
		"columns": cols,
		"total":   len(records),
	})
}

type moveRequest struct {
	ID string        `json:"id"`
	To domain.Status `json:"to"`
}

// Move persists a drag-drop transition. On failure the response is an
// error envelope and nothing has been written; the card's origin column
// (captured by the shell at drag-start) is the rollback target.
func (h BoardHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}
	if req.ID == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_id", "missing application id")
		return
	}

	res, err := h.Board.Move(r.Context(), req.ID, req.To)
	if err != nil {
		WriteStoreError(w, r, err)
		return
	}

	if res.Moved {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeApplicationMoved, 1, map[string]any{
			"id": res.ID, "from": res.From, "to": res.To, "progressStage": res.Stage,
		}))
	}
	writeJSON(w, res)
}
