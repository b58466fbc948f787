package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"jobtrack-engine/internal/board"
	"jobtrack-engine/internal/domain"
)

func TestBoardMovePersists(t *testing.T) {
	srv, st := newTestServer(t)

	var created domain.Application
	doJSON(t, http.MethodPost, srv.URL+"/applications",
		newApp("Engineer", "Acme", "2024-01-10", domain.StatusApplied), &created)

	var res board.TransitionResult
	resp := doJSON(t, http.MethodPost, srv.URL+"/board/move",
		map[string]any{"id": created.ID, "to": "offer"}, &res)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("move status = %d", resp.StatusCode)
	}
	if !res.Moved || res.From != domain.StatusApplied || res.To != domain.StatusOffer {
		t.Fatalf("result: %+v", res)
	}

	got, err := st.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get() = %v", err)
	}
	if got.Status != domain.StatusOffer || got.ProgressStage != domain.StageFinalStage {
		t.Errorf("persisted: status=%s stage=%s", got.Status, got.ProgressStage)
	}

	before, _ := time.Parse(time.RFC3339Nano, created.UpdatedAt)
	after, _ := time.Parse(time.RFC3339Nano, got.UpdatedAt)
	if !after.After(before) {
		t.Errorf("updatedAt not advanced: %q -> %q", created.UpdatedAt, got.UpdatedAt)
	}
}

func TestBoardMoveMissingRecord(t *testing.T) {
	srv, _ := newTestServer(t)

	var apiErr APIError
	resp := doJSON(t, http.MethodPost, srv.URL+"/board/move",
		map[string]any{"id": "nope", "to": "offer"}, &apiErr)
	if resp.StatusCode != http.StatusNotFound || apiErr.Error.Code != "not_found" {
		t.Fatalf("move: %d %q", resp.StatusCode, apiErr.Error.Code)
	}
}

func TestBoardMoveInvalidTarget(t *testing.T) {
	srv, _ := newTestServer(t)

	var created domain.Application
	doJSON(t, http.MethodPost, srv.URL+"/applications",
		newApp("Engineer", "Acme", "2024-01-10", domain.StatusApplied), &created)

	var apiErr APIError
	resp := doJSON(t, http.MethodPost, srv.URL+"/board/move",
		map[string]any{"id": created.ID, "to": "ghosted"}, &apiErr)
	if resp.StatusCode != http.StatusUnprocessableEntity || apiErr.Error.Code != "validation_failed" {
		t.Fatalf("move: %d %q", resp.StatusCode, apiErr.Error.Code)
	}
}

func TestBoardColumns(t *testing.T) {
	srv, _ := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/applications",
		newApp("A", "Acme", "2024-01-10", domain.StatusApplied), nil)
	doJSON(t, http.MethodPost, srv.URL+"/applications",
		newApp("B", "Beta", "2024-01-11", domain.StatusOffer), nil)

	var body struct {
		Columns []board.Column `json:"columns"`
		Total   int            `json:"total"`
	}
	resp := doJSON(t, http.MethodGet, srv.URL+"/board", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("board status = %d", resp.StatusCode)
	}
	if body.Total != 2 || len(body.Columns) != len(domain.Statuses) {
		t.Fatalf("board: total=%d columns=%d", body.Total, len(body.Columns))
	}
	if body.Columns[0].Status != domain.StatusApplied || body.Columns[0].Count != 1 {
		t.Errorf("applied column: %+v", body.Columns[0])
	}
}
