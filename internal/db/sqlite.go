// Package db provides the persistent store implementations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arashpm/courseplan/internal/course"
)

// SQLite implements course.Store using SQLite.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite store and runs migrations.
func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Load reads the persisted snapshot. An empty database yields an empty
// snapshot.
func (s *SQLite) Load(ctx context.Context) (course.Snapshot, error) {
	query := `
		SELECT id, code, name, professor, units, exam_status, exam_date, exam_time
		FROM courses
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return course.Snapshot{}, fmt.Errorf("querying courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []*course.Course
	for rows.Next() {
		var (
			cr         course.Course
			examStatus string
			examDate   sql.NullString
			examTime   sql.NullString
		)

		err := rows.Scan(
			&cr.ID,
			&cr.Code,
			&cr.Name,
			&cr.Professor,
			&cr.Units,
			&examStatus,
			&examDate,
			&examTime,
		)
		if err != nil {
			return course.Snapshot{}, fmt.Errorf("scanning course: %w", err)
		}

		cr.Exam = course.Exam{Status: course.ExamStatus(examStatus)}
		if cr.Exam.Status == course.ExamScheduled {
			cr.Exam.Date = examDate.String
			cr.Exam.Time = examTime.String
		}

		courses = append(courses, &cr)
	}
	if err := rows.Err(); err != nil {
		return course.Snapshot{}, fmt.Errorf("iterating courses: %w", err)
	}

	for _, cr := range courses {
		cr.Sessions, err = s.loadSessions(ctx, cr.ID)
		if err != nil {
			return course.Snapshot{}, err
		}
	}

	nextID, err := s.loadNextID(ctx)
	if err != nil {
		return course.Snapshot{}, err
	}

	return course.Snapshot{Courses: courses, NextID: nextID}, nil
}

func (s *SQLite) loadSessions(ctx context.Context, courseID int64) ([]course.Session, error) {
	query := `
		SELECT day, start_time, end_time
		FROM sessions
		WHERE course_id = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []course.Session
	for rows.Next() {
		var sess course.Session
		if err := rows.Scan(&sess.Day, &sess.Start, &sess.End); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	return sessions, nil
}

func (s *SQLite) loadNextID(ctx context.Context) (int64, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM planner_meta WHERE key = 'next_id'`).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("querying next id: %w", err)
	}

	nextID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// An externally edited counter is tolerated; the collection
		// re-derives it from the data.
		return 0, nil
	}
	return nextID, nil
}

// Save replaces the persisted snapshot wholesale in one transaction.
func (s *SQLite) Save(ctx context.Context, snap course.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clearing sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("clearing courses: %w", err)
	}

	courseStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO courses (id, code, name, professor, units, exam_status, exam_date, exam_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing course insert: %w", err)
	}
	defer func() { _ = courseStmt.Close() }()

	sessionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sessions (course_id, position, day, start_time, end_time)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing session insert: %w", err)
	}
	defer func() { _ = sessionStmt.Close() }()

	for _, cr := range snap.Courses {
		var examDate, examTime sql.NullString
		if cr.Exam.Status == course.ExamScheduled {
			examDate = sql.NullString{String: cr.Exam.Date, Valid: true}
			examTime = sql.NullString{String: cr.Exam.Time, Valid: true}
		}

		_, err := courseStmt.ExecContext(ctx,
			cr.ID,
			cr.Code,
			cr.Name,
			cr.Professor,
			cr.Units,
			string(cr.Exam.Status),
			examDate,
			examTime,
		)
		if err != nil {
			return fmt.Errorf("inserting course %q: %w", cr.Code, err)
		}

		for i, sess := range cr.Sessions {
			_, err := sessionStmt.ExecContext(ctx, cr.ID, i, string(sess.Day), sess.Start, sess.End)
			if err != nil {
				return fmt.Errorf("inserting session %d of %q: %w", i+1, cr.Code, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO planner_meta (key, value) VALUES ('next_id', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, strconv.FormatInt(snap.NextID, 10))
	if err != nil {
		return fmt.Errorf("saving next id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}
