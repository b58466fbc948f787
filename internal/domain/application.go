package domain

import "time"

// DateLayout is the calendar-date format used for applicationDate and
// deadline. Timestamps (createdAt/updatedAt) are RFC3339.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusApplied   Status = "applied"
	StatusScreening Status = "screening"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// Statuses lists every status in board/sort order.
var Statuses = []Status{
	StatusApplied,
	StatusScreening,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

var statusRank = map[Status]int{
	StatusApplied:   0,
	StatusScreening: 1,
	StatusInterview: 2,
	StatusOffer:     3,
	StatusRejected:  4,
	StatusWithdrawn: 5,
}

func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank orders statuses for sorting (not alphabetical). Unknown statuses
// sort last.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return len(statusRank)
}

type ProgressStage string

const (
	StageToApply    ProgressStage = "to-apply"
	StageApplied    ProgressStage = "applied"
	StageInProgress ProgressStage = "in-progress"
	StageFinalStage ProgressStage = "final-stage"
	StageCompleted  ProgressStage = "completed"
)

func (p ProgressStage) Valid() bool {
	switch p {
	case StageToApply, StageApplied, StageInProgress, StageFinalStage, StageCompleted:
		return true
	}
	return false
}

var stageForStatus = map[Status]ProgressStage{
	StatusApplied:   StageApplied,
	StatusScreening: StageInProgress,
	StatusInterview: StageInProgress,
	StatusOffer:     StageFinalStage,
	StatusRejected:  StageCompleted,
	StatusWithdrawn: StageCompleted,
}

// StageForStatus derives the coarse progress stage from a status. The
// mapping is total over valid statuses.
func StageForStatus(s Status) ProgressStage {
	return stageForStatus[s]
}

type InterviewDate struct {
	Date  string `json:"date"`
	Type  string `json:"type,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type Document struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	AddedAt string `json:"addedAt,omitempty"`
}

// Application is one job application. The store owns persisted instances;
// everything handed to the API is a copy.
type Application struct {
	ID              string          `json:"id"`
	JobTitle        string          `json:"jobTitle"`
	CompanyName     string          `json:"companyName"`
	ApplicationDate string          `json:"applicationDate"` // YYYY-MM-DD
	Status          Status          `json:"status"`
	Deadline        string          `json:"deadline,omitempty"` // YYYY-MM-DD
	URL             string          `json:"url,omitempty"`
	Salary          string          `json:"salary,omitempty"`
	Location        string          `json:"location,omitempty"`
	ProgressStage   ProgressStage   `json:"progressStage,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	InterviewDates  []InterviewDate `json:"interviewDates,omitempty"`
	Contacts        []Contact       `json:"contacts,omitempty"`
	Documents       []Document      `json:"documents,omitempty"`
	CreatedAt       string          `json:"createdAt"` // RFC3339, store-assigned
	UpdatedAt       string          `json:"updatedAt"` // RFC3339, store-assigned
}

// AppliedOn parses applicationDate. ok is false when the field is empty or
// unparseable; callers decide whether that excludes the record.
func (a Application) AppliedOn() (time.Time, bool) {
	if a.ApplicationDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, a.ApplicationDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
