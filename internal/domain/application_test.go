package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testLimits() Limits {
	return Limits{
		NotesMaxChars:     100,
		RejectFutureDates: true,
		Now:               func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func validApp() Application {
	return Application{
		ID:              "app-1",
		JobTitle:        "Engineer",
		CompanyName:     "Acme",
		ApplicationDate: "2024-01-10",
		Status:          StatusApplied,
	}
}

func TestStageForStatusTable(t *testing.T) {
	want := map[Status]ProgressStage{
		StatusApplied:   StageApplied,
		StatusScreening: StageInProgress,
		StatusInterview: StageInProgress,
		StatusOffer:     StageFinalStage,
		StatusRejected:  StageCompleted,
		StatusWithdrawn: StageCompleted,
	}
	if len(want) != len(Statuses) {
		t.Fatalf("table covers %d statuses, want %d", len(want), len(Statuses))
	}
	for s, stage := range want {
		if got := StageForStatus(s); got != stage {
			t.Errorf("StageForStatus(%s) = %s, want %s", s, got, stage)
		}
	}
}

func TestStatusRankOrder(t *testing.T) {
	for i := 1; i < len(Statuses); i++ {
		if Statuses[i-1].Rank() >= Statuses[i].Rank() {
			t.Errorf("rank(%s)=%d not below rank(%s)=%d",
				Statuses[i-1], Statuses[i-1].Rank(), Statuses[i], Statuses[i].Rank())
		}
	}
	if Status("bogus").Rank() <= StatusWithdrawn.Rank() {
		t.Error("unknown status must rank after every known one")
	}
}

func TestSanitizeAcceptsValid(t *testing.T) {
	app := validApp()
	if err := Sanitize(&app, testLimits()); err != nil {
		t.Fatalf("Sanitize() = %v, want nil", err)
	}
	if app.ProgressStage != StageApplied {
		t.Errorf("default progressStage = %s, want %s", app.ProgressStage, StageApplied)
	}
}

func TestSanitizeRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Application)
		frag   string
	}{
		{"missing title", func(a *Application) { a.JobTitle = "  " }, "jobTitle"},
		{"missing company", func(a *Application) { a.CompanyName = "" }, "companyName"},
		{"missing date", func(a *Application) { a.ApplicationDate = "" }, "applicationDate"},
		{"bad date", func(a *Application) { a.ApplicationDate = "01/10/2024" }, "not a valid date"},
		{"future date", func(a *Application) { a.ApplicationDate = "2024-06-16" }, "future"},
		{"bad status", func(a *Application) { a.Status = "ghosted" }, "status"},
		{"bad deadline", func(a *Application) { a.Deadline = "soon" }, "deadline"},
		{"relative url", func(a *Application) { a.URL = "/jobs/1" }, "url"},
		{"ftp url", func(a *Application) { a.URL = "ftp://acme.test/x" }, "url"},
		{"notes too long", func(a *Application) { a.Notes = strings.Repeat("x", 101) }, "notes"},
		{"bad stage", func(a *Application) { a.ProgressStage = "done" }, "progressStage"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := validApp()
			tc.mutate(&app)
			err := Sanitize(&app, testLimits())
			if err == nil {
				t.Fatal("Sanitize() = nil, want error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tc.frag) {
				t.Errorf("error %q does not mention %q", err, tc.frag)
			}
		})
	}
}

func TestSanitizeFutureDateAllowedWhenDisabled(t *testing.T) {
	lim := testLimits()
	lim.RejectFutureDates = false

	app := validApp()
	app.ApplicationDate = "2030-01-01"
	if err := Sanitize(&app, lim); err != nil {
		t.Fatalf("Sanitize() = %v, want nil with future dates allowed", err)
	}
}

func TestMergeForUpdate(t *testing.T) {
	prev := validApp()
	prev.CreatedAt = "2024-01-10T09:00:00Z"
	prev.UpdatedAt = "2024-01-11T09:00:00Z"
	prev.Contacts = []Contact{{Name: "Dana"}}
	prev.Documents = []Document{{Name: "resume.pdf"}}

	next := prev
	next.ID = "spoofed"
	next.CreatedAt = "2029-01-01T00:00:00Z"
	next.JobTitle = "Senior Engineer"
	next.Contacts = nil
	next.Documents = []Document{{Name: "cover.pdf"}}

	got := MergeForUpdate(prev, next)
	if got.ID != prev.ID {
		t.Errorf("ID = %q, want %q", got.ID, prev.ID)
	}
	if got.CreatedAt != prev.CreatedAt {
		t.Errorf("CreatedAt = %q, want %q", got.CreatedAt, prev.CreatedAt)
	}
	if got.JobTitle != "Senior Engineer" {
		t.Errorf("JobTitle = %q, edit did not apply", got.JobTitle)
	}
	if len(got.Contacts) != 1 || got.Contacts[0].Name != "Dana" {
		t.Errorf("untouched contacts not carried: %+v", got.Contacts)
	}
	if len(got.Documents) != 1 || got.Documents[0].Name != "cover.pdf" {
		t.Errorf("edited documents not taken: %+v", got.Documents)
	}
}

func TestAppliedOn(t *testing.T) {
	app := validApp()
	d, ok := app.AppliedOn()
	if !ok || d.Format(DateLayout) != "2024-01-10" {
		t.Errorf("AppliedOn() = %v, %v", d, ok)
	}

	app.ApplicationDate = ""
	if _, ok := app.AppliedOn(); ok {
		t.Error("empty date should not parse")
	}

	app.ApplicationDate = "not-a-date"
	if _, ok := app.AppliedOn(); ok {
		t.Error("garbage date should not parse")
	}
}
