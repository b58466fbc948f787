package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

// TransferHandler is the import/export collaborator: export reads the
// full record set, import adds one record at a time exactly like
// form-driven creation.
type TransferHandler struct {
	Store *store.Store
	Hub   *events.Hub
}

type exportEnvelope struct {
	ExportedAt   string               `json:"exportedAt"`
	Count        int                  `json:"count"`
	Applications []domain.Application `json:"applications"`
}

func (h TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.GetAll(r.Context())
	if err != nil {
		WriteStoreError(w, r, err)
		return
	}
	if records == nil {
		records = []domain.Application{}
	}

	w.Header().Set("Content-Disposition", `attachment; filename="applications.json"`)
	writeJSON(w, exportEnvelope{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		Count:        len(records),
		Applications: records,
	})
}

type importReport struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Reasons []string `json:"reasons,omitempty"`
}

const maxImportReasons = 20

// Import accepts either the export envelope or a bare array. Each record
// goes through Add, so the sanitizer gate and duplicate detection apply
// per record; failures skip that record and the rest continue.
func (h TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := decodeImport(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	var rep importReport
	for i, app := range body {
		if app.ID == "" {
			app.ID = uuid.NewString()
		}
		app.CreatedAt = ""
		app.UpdatedAt = ""

		if _, err := h.Store.Add(r.Context(), app); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) || errors.Is(err, domain.ErrInvalid) {
				rep.Skipped++
				if len(rep.Reasons) < maxImportReasons {
					rep.Reasons = append(rep.Reasons, fmt.Sprintf("record %d: %v", i, err))
				}
				continue
			}
			// storage failure: stop, report what landed
			WriteStoreError(w, r, err)
			return
		}
		rep.Added++
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeImportFinished, 1, rep))
	writeJSON(w, rep)
}

// decodeImport accepts the export envelope or a bare array of records.
func decodeImport(r *http.Request) ([]domain.Application, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, 32<<20))
	if err != nil {
		return nil, errors.New("could not read request body")
	}

	var env exportEnvelope
	if err := json.Unmarshal(b, &env); err == nil && env.Applications != nil {
		return env.Applications, nil
	}

	var bare []domain.Application
	if err := json.Unmarshal(b, &bare); err == nil {
		return bare, nil
	}
	return nil, errors.New("body must be an export envelope or an array of applications")
}
