// Package course defines the core domain types for courseplan.
package course

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrEmptyName          = errors.New("course name cannot be empty")
	ErrEmptyCode          = errors.New("course code cannot be empty")
	ErrInvalidTimeFormat  = errors.New("time must be numeric HH:MM")
	ErrEndBeforeStart     = errors.New("end time must be after start time")
	ErrOutOfWindow        = errors.New("session is outside the daily window")
	ErrMissingSessionTime = errors.New("session start and end times are required")
	ErrUnknownWeekday     = errors.New("unknown weekday")
	ErrNoSessions         = errors.New("course needs at least one session")
	ErrIncompleteExam     = errors.New("exam date and time must be provided together")
	ErrInvalidExamDate    = errors.New("exam date is out of range")
)

// Domain errors.
var (
	ErrDuplicateCode  = errors.New("a course with this code already exists")
	ErrClassConflict  = errors.New("session overlaps with another course")
	ErrCourseNotFound = errors.New("course not found")
)

// ExamDurationMinutes is the fixed exam length used for conflict windows.
// The duration is never stored, only applied when comparing exam slots.
const ExamDurationMinutes = 120

// MinExamYear is the lowest year accepted for an exam date. The planner
// originated with Persian calendar years, so the floor sits at 1300.
const MinExamYear = 1300

// Weekday is a symbolic day name from the configured five-day week,
// stored lowercase ("saturday" .. "wednesday" by default).
type Weekday string

// Session is one recurring weekly occurrence of a course. Times are
// canonical "HH:MM" strings produced by Normalize.
type Session struct {
	Day   Weekday
	Start string
	End   string
}

// StartMinutes returns the session start as minutes since midnight.
func (s Session) StartMinutes() (int, error) {
	return ParseMinutes(s.Start)
}

// EndMinutes returns the session end as minutes since midnight.
func (s Session) EndMinutes() (int, error) {
	return ParseMinutes(s.End)
}

// ExamStatus distinguishes an unset exam from an explicit opt-out.
type ExamStatus string

const (
	// ExamUnspecified means no exam information was entered.
	ExamUnspecified ExamStatus = "unspecified"
	// ExamNone means the course explicitly has no exam.
	ExamNone ExamStatus = "none"
	// ExamScheduled means the course has a concrete exam slot.
	ExamScheduled ExamStatus = "scheduled"
)

// Exam is a course's final exam slot. Date ("YYYY-MM-DD") and Time
// ("HH:MM") are set only when Status is ExamScheduled.
type Exam struct {
	Status ExamStatus
	Date   string
	Time   string
}

// Scheduled returns true if a concrete exam slot is set.
func (e Exam) Scheduled() bool {
	return e.Status == ExamScheduled
}

// Course represents one course with its weekly sessions and exam slot.
type Course struct {
	ID        int64
	Code      string
	Name      string
	Professor string
	Units     float64
	Sessions  []Session
	Exam      Exam
}

// Clone returns a deep copy of the course.
func (c *Course) Clone() *Course {
	out := *c
	out.Sessions = append([]Session(nil), c.Sessions...)
	return &out
}

// ExamWindow returns the exam interval as absolute minutes since the Unix
// epoch, [start, start+ExamDurationMinutes). ok is false when the course
// has no scheduled exam or its date/time cannot be parsed; such courses
// are silently excluded from exam comparisons.
func (c *Course) ExamWindow() (start, end int64, ok bool) {
	if !c.Exam.Scheduled() {
		return 0, 0, false
	}
	date, err := time.ParseInLocation("2006-01-02", c.Exam.Date, time.UTC)
	if err != nil {
		return 0, 0, false
	}
	mins, err := ParseMinutes(c.Exam.Time)
	if err != nil {
		return 0, 0, false
	}
	start = date.Unix()/60 + int64(mins)
	return start, start + ExamDurationMinutes, true
}
