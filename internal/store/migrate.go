package store

import "database/sql"

func migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: table ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS applications (
  id TEXT PRIMARY KEY,
  job_title TEXT NOT NULL,
  company_name TEXT NOT NULL,
  application_date TEXT NOT NULL,
  status TEXT NOT NULL,
  deadline TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  progress_stage TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  interview_dates TEXT NOT NULL DEFAULT '[]',
  contacts TEXT NOT NULL DEFAULT '[]',
  documents TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: secondary indexes ----
	// None of the read paths use them yet (reads are full scans feeding
	// the in-memory pipeline); they exist for index-backed queries later.

	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);`,
		`CREATE INDEX IF NOT EXISTS idx_applications_company_name ON applications(company_name);`,
		`CREATE INDEX IF NOT EXISTS idx_applications_application_date ON applications(application_date);`,
		`CREATE INDEX IF NOT EXISTS idx_applications_deadline ON applications(deadline);`,
		`CREATE INDEX IF NOT EXISTS idx_applications_progress_stage ON applications(progress_stage);`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
