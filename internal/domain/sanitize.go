package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrInvalid marks records rejected by the sanitizer. The store wraps it,
// so callers can errors.Is against it regardless of which write path hit
// the gate.
var ErrInvalid = errors.New("invalid application")

// Limits carries the tunable parts of validation. Now is injectable for
// the future-date check in tests.
type Limits struct {
	NotesMaxChars     int
	RejectFutureDates bool
	Now               func() time.Time
}

func DefaultLimits() Limits {
	return Limits{
		NotesMaxChars:     2000,
		RejectFutureDates: true,
		Now:               time.Now,
	}
}

// Sanitize normalizes free text in place and validates required fields,
// enum membership, dates and the notes cap. It is the single gate before
// any store write; nothing invalid may pass it.
func Sanitize(a *Application, lim Limits) error {
	var probs []string

	a.JobTitle = strings.TrimSpace(a.JobTitle)
	a.CompanyName = strings.TrimSpace(a.CompanyName)
	a.Salary = strings.TrimSpace(a.Salary)
	a.Location = strings.TrimSpace(a.Location)
	a.Notes = strings.TrimSpace(a.Notes)
	a.URL = strings.TrimSpace(a.URL)

	if a.JobTitle == "" {
		probs = append(probs, "jobTitle is required")
	}
	if a.CompanyName == "" {
		probs = append(probs, "companyName is required")
	}

	if a.ApplicationDate == "" {
		probs = append(probs, "applicationDate is required")
	} else if d, err := time.Parse(DateLayout, a.ApplicationDate); err != nil {
		probs = append(probs, fmt.Sprintf("applicationDate %q is not a valid date", a.ApplicationDate))
	} else if lim.RejectFutureDates {
		now := time.Now
		if lim.Now != nil {
			now = lim.Now
		}
		today := now().Format(DateLayout)
		if d.Format(DateLayout) > today {
			probs = append(probs, fmt.Sprintf("applicationDate %q is in the future", a.ApplicationDate))
		}
	}

	if !a.Status.Valid() {
		probs = append(probs, fmt.Sprintf("status %q is not one of the known statuses", a.Status))
	}

	if a.Deadline != "" {
		if _, err := time.Parse(DateLayout, a.Deadline); err != nil {
			probs = append(probs, fmt.Sprintf("deadline %q is not a valid date", a.Deadline))
		}
	}

	if a.URL != "" {
		u, err := url.Parse(a.URL)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			probs = append(probs, fmt.Sprintf("url %q must be absolute http(s)", a.URL))
		}
	}

	if lim.NotesMaxChars > 0 && len([]rune(a.Notes)) > lim.NotesMaxChars {
		probs = append(probs, fmt.Sprintf("notes exceeds %d characters", lim.NotesMaxChars))
	}

	// Default the derived stage rather than rejecting its absence; forms
	// never send it.
	if a.ProgressStage == "" && a.Status.Valid() {
		a.ProgressStage = StageForStatus(a.Status)
	} else if a.ProgressStage != "" && !a.ProgressStage.Valid() {
		probs = append(probs, fmt.Sprintf("progressStage %q is not a known stage", a.ProgressStage))
	}

	if len(probs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(probs, "; "))
	}
	return nil
}

// MergeForUpdate applies edit-submit semantics: identity and creation
// time come from the stored record, nested collections survive when the
// edit did not touch them. updatedAt is left for the store to assign.
func MergeForUpdate(prev, next Application) Application {
	out := next
	out.ID = prev.ID
	out.CreatedAt = prev.CreatedAt
	if out.InterviewDates == nil {
		out.InterviewDates = prev.InterviewDates
	}
	if out.Contacts == nil {
		out.Contacts = prev.Contacts
	}
	if out.Documents == nil {
		out.Documents = prev.Documents
	}
	return out
}
