package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobtrack-engine/internal/domain"
)

const applicationCols = `id, job_title, company_name, application_date, status, deadline,
url, salary, location, progress_stage, notes,
interview_dates, contacts, documents, created_at, updated_at`

// Add inserts a new record under the caller-supplied id. The sanitizer
// runs here, not at call sites: nothing invalid reaches SQL.
func (s *Store) Add(ctx context.Context, app domain.Application) (domain.Application, error) {
	if app.ID == "" {
		return domain.Application{}, fmt.Errorf("add: %w: id is required", domain.ErrInvalid)
	}
	if err := domain.Sanitize(&app, s.lim); err != nil {
		return domain.Application{}, fmt.Errorf("add: %w", err)
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	app.CreatedAt = now
	app.UpdatedAt = now

	// INSERT OR IGNORE + changes() tells us whether the row landed
	// without racing a separate existence check.
	_, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO applications (`+applicationCols+`)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		app.ID, app.JobTitle, app.CompanyName, app.ApplicationDate, string(app.Status), app.Deadline,
		app.URL, app.Salary, app.Location, string(app.ProgressStage), app.Notes,
		marshalColl(app.InterviewDates), marshalColl(app.Contacts), marshalColl(app.Documents),
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return domain.Application{}, fmt.Errorf("add application: %w", err)
	}

	var changes int
	if err := s.db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err != nil {
		return domain.Application{}, fmt.Errorf("add application: %w", err)
	}
	if changes == 0 {
		return domain.Application{}, fmt.Errorf("add %s: %w", app.ID, ErrDuplicateKey)
	}

	s.bump()
	return app, nil
}

// Get returns the record for id or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (domain.Application, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+applicationCols+`
FROM applications
WHERE id = ?;`, id)

	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Application{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Application{}, fmt.Errorf("get %s: %w", id, err)
	}
	return app, nil
}

// Put upserts by id. The caller merges fields first (MergeForUpdate);
// the store only refreshes updatedAt and, on the insert path, fills
// createdAt. Last write wins.
func (s *Store) Put(ctx context.Context, app domain.Application) (domain.Application, error) {
	if app.ID == "" {
		return domain.Application{}, fmt.Errorf("put: %w: id is required", domain.ErrInvalid)
	}
	if err := domain.Sanitize(&app, s.lim); err != nil {
		return domain.Application{}, fmt.Errorf("put: %w", err)
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	app.UpdatedAt = now
	if app.CreatedAt == "" {
		app.CreatedAt = now
	}

	// created_at is deliberately absent from the conflict branch so an
	// upsert can never rewrite creation time.
	_, err := s.db.ExecContext(ctx, `
INSERT INTO applications (`+applicationCols+`)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  job_title=excluded.job_title,
  company_name=excluded.company_name,
  application_date=excluded.application_date,
  status=excluded.status,
  deadline=excluded.deadline,
  url=excluded.url,
  salary=excluded.salary,
  location=excluded.location,
  progress_stage=excluded.progress_stage,
  notes=excluded.notes,
  interview_dates=excluded.interview_dates,
  contacts=excluded.contacts,
  documents=excluded.documents,
  updated_at=excluded.updated_at;`,
		app.ID, app.JobTitle, app.CompanyName, app.ApplicationDate, string(app.Status), app.Deadline,
		app.URL, app.Salary, app.Location, string(app.ProgressStage), app.Notes,
		marshalColl(app.InterviewDates), marshalColl(app.Contacts), marshalColl(app.Documents),
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return domain.Application{}, fmt.Errorf("put application: %w", err)
	}

	s.bump()
	return app, nil
}

// PutIf is Put with a check-and-set on updatedAt: the write only lands if
// the stored record still carries expectedUpdatedAt. Returns ErrConflict
// when someone got there first, ErrNotFound when the record is gone. The
// board transition path uses this so a drag never clobbers a concurrent
// edit.
func (s *Store) PutIf(ctx context.Context, app domain.Application, expectedUpdatedAt string) (domain.Application, error) {
	if app.ID == "" {
		return domain.Application{}, fmt.Errorf("putif: %w: id is required", domain.ErrInvalid)
	}
	if err := domain.Sanitize(&app, s.lim); err != nil {
		return domain.Application{}, fmt.Errorf("putif: %w", err)
	}

	app.UpdatedAt = s.now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(ctx, `
UPDATE applications SET
  job_title=?, company_name=?, application_date=?, status=?, deadline=?,
  url=?, salary=?, location=?, progress_stage=?, notes=?,
  interview_dates=?, contacts=?, documents=?, updated_at=?
WHERE id = ? AND updated_at = ?;`,
		app.JobTitle, app.CompanyName, app.ApplicationDate, string(app.Status), app.Deadline,
		app.URL, app.Salary, app.Location, string(app.ProgressStage), app.Notes,
		marshalColl(app.InterviewDates), marshalColl(app.Contacts), marshalColl(app.Documents),
		app.UpdatedAt,
		app.ID, expectedUpdatedAt,
	)
	if err != nil {
		return domain.Application{}, fmt.Errorf("putif application: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Application{}, fmt.Errorf("putif application: %w", err)
	}
	if n == 0 {
		var one int
		e := s.db.QueryRowContext(ctx, `SELECT 1 FROM applications WHERE id = ? LIMIT 1;`, app.ID).Scan(&one)
		if errors.Is(e, sql.ErrNoRows) {
			return domain.Application{}, fmt.Errorf("putif %s: %w", app.ID, ErrNotFound)
		}
		return domain.Application{}, fmt.Errorf("putif %s: %w", app.ID, ErrConflict)
	}

	s.bump()
	return app, nil
}

// Delete removes the record. Deleting a missing id is an error, not a
// no-op, so callers can report accurately.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	s.bump()
	return nil
}

// GetAll returns every record, unordered with respect to any index.
// Ordering is the query pipeline's job.
func (s *Store) GetAll(ctx context.Context) ([]domain.Application, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+applicationCols+` FROM applications;`)
	if err != nil {
		return nil, fmt.Errorf("get all: %w", err)
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("get all: %w", err)
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get all: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(r rowScanner) (domain.Application, error) {
	var app domain.Application
	var status, stage string
	var interviews, contacts, documents string

	if err := r.Scan(
		&app.ID, &app.JobTitle, &app.CompanyName, &app.ApplicationDate, &status, &app.Deadline,
		&app.URL, &app.Salary, &app.Location, &stage, &app.Notes,
		&interviews, &contacts, &documents,
		&app.CreatedAt, &app.UpdatedAt,
	); err != nil {
		return domain.Application{}, err
	}

	app.Status = domain.Status(status)
	app.ProgressStage = domain.ProgressStage(stage)
	_ = json.Unmarshal([]byte(interviews), &app.InterviewDates)
	_ = json.Unmarshal([]byte(contacts), &app.Contacts)
	_ = json.Unmarshal([]byte(documents), &app.Documents)
	return app, nil
}

func marshalColl(v any) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return "[]"
	}
	return string(b)
}
