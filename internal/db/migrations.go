package db

import "fmt"

// migrate runs database migrations.
//
// Dates and times are stored as the canonical strings the domain uses.
// A DATE/DATETIME decltype would make the driver scan them back as
// time.Time.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS courses (
			id          INTEGER PRIMARY KEY,
			code        TEXT NOT NULL,
			name        TEXT NOT NULL,
			professor   TEXT NOT NULL DEFAULT '',
			units       REAL NOT NULL DEFAULT 0,
			exam_status TEXT NOT NULL DEFAULT 'unspecified'
			            CHECK(exam_status IN ('unspecified', 'none', 'scheduled')),
			exam_date   TEXT,
			exam_time   TEXT
		);

		CREATE TABLE IF NOT EXISTS sessions (
			course_id  INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			position   INTEGER NOT NULL,
			day        TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time   TEXT NOT NULL,
			PRIMARY KEY (course_id, position)
		);

		CREATE TABLE IF NOT EXISTS planner_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_day ON sessions(day);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schedule tables: %w", err)
	}

	return nil
}
