package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/query"
	"jobtrack-engine/internal/store"
)

type ApplicationsHandler struct {
	Store *store.Store
	Hub   *events.Hub
	Cache *query.Cache
	Now   func() time.Time
}

func (h ApplicationsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// List runs the derived-view pipeline over the full record set. Results
// memoize on (options value, store revision, day).
func (h ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	opts := query.Options{
		Criteria: query.Criteria{
			Text:   q.Get("q"),
			Status: domain.Status(q.Get("status")),
			Range:  query.DateRange(q.Get("range")),
		},
		Sort:   query.SortField(q.Get("sort")),
		Order:  query.Direction(q.Get("order")),
		Limit:  limit,
		Offset: offset,
	}

	now := h.now()
	rev := h.Store.Revision()
	if h.Cache != nil {
		if res, ok := h.Cache.Get(opts, rev, now); ok {
			writeJSON(w, res)
			return
		}
	}

	records, err := h.Store.GetAll(r.Context())
	if err != nil {
		WriteStoreError(w, r, err)
		return
	}

	res := query.Apply(records, opts, now)
	if res.Items == nil {
		res.Items = []domain.Application{}
	}
	if h.Cache != nil {
		h.Cache.Set(opts, rev, now, res)
	}
	writeJSON(w, res)
}

// Create assigns the id and timestamps; the shell never dictates either.
func (h ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var app domain.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = ""
	app.UpdatedAt = ""

	saved, err := h.Store.Add(r.Context(), app)
	if err != nil {
		WriteStoreError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeApplicationCreated, 1, map[string]any{"id": saved.ID}))
	WriteJSON(w, http.StatusCreated, saved)
}

func (h ApplicationsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/applications/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_id", "missing application id")
		return
	}

	app, err := h.Store.Get(r.Context(), id)
	if err != nil {
		WriteStoreError(w, r, err)
		return
	}
	writeJSON(w, app)
}

// PutByPath is edit-submit: re-read the stored record, merge the edit
// over it (identity, creation time and untouched nested collections
// survive), then upsert.
func (h ApplicationsHandler) PutByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/applications/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_id", "missing application id")
		return
	}

	prev, err := h.Store.Get(r.Context(), id)
	if err != nil {
		WriteStoreError(w, r, err)
		return
	}

	var next domain.Application
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}

	merged := domain.MergeForUpdate(prev, next)
	saved, err := h.Store.Put(r.Context(), merged)
	if err != nil {
		WriteStoreError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeApplicationUpdated, 1, map[string]any{"id": saved.ID}))
	writeJSON(w, saved)
}

func (h ApplicationsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/applications/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_id", "missing application id")
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		WriteStoreError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeApplicationDeleted, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
