package httpapi

import (
	"net/http"
	"testing"

	"jobtrack-engine/internal/domain"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := newTestServer(t)

	doJSON(t, http.MethodPost, src.URL+"/applications",
		newApp("Engineer", "Acme", "2024-01-10", domain.StatusApplied), nil)
	doJSON(t, http.MethodPost, src.URL+"/applications",
		newApp("SRE", "Beta", "2024-02-01", domain.StatusInterview), nil)

	var env exportEnvelope
	resp := doJSON(t, http.MethodGet, src.URL+"/export", nil, &env)
	if resp.StatusCode != http.StatusOK || env.Count != 2 || len(env.Applications) != 2 {
		t.Fatalf("export: %d count=%d", resp.StatusCode, env.Count)
	}

	dst, _ := newTestServer(t)
	var rep importReport
	resp = doJSON(t, http.MethodPost, dst.URL+"/import", env, &rep)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import status = %d", resp.StatusCode)
	}
	if rep.Added != 2 || rep.Skipped != 0 {
		t.Fatalf("report: %+v", rep)
	}

	// importing the same envelope again skips everything on duplicate ids
	resp = doJSON(t, http.MethodPost, dst.URL+"/import", env, &rep)
	if resp.StatusCode != http.StatusOK || rep.Added != 0 || rep.Skipped != 2 {
		t.Fatalf("re-import: %d %+v", resp.StatusCode, rep)
	}
}

func TestImportBareArrayAndBadRecords(t *testing.T) {
	srv, _ := newTestServer(t)

	records := []map[string]any{
		newApp("Engineer", "Acme", "2024-01-10", domain.StatusApplied),
		newApp("", "NoTitle Inc", "2024-01-10", domain.StatusApplied), // invalid, skipped
	}

	var rep importReport
	resp := doJSON(t, http.MethodPost, srv.URL+"/import", records, &rep)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import status = %d", resp.StatusCode)
	}
	if rep.Added != 1 || rep.Skipped != 1 || len(rep.Reasons) != 1 {
		t.Fatalf("report: %+v", rep)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	srv, _ := newTestServer(t)

	var apiErr APIError
	resp := doJSON(t, http.MethodPost, srv.URL+"/import", "not an envelope", &apiErr)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("import status = %d", resp.StatusCode)
	}
}
