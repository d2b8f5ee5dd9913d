package course

import (
	"fmt"
	"strconv"
	"strings"
)

// CandidateSession carries raw session input for one weekly meeting.
type CandidateSession struct {
	Day   string
	Start string
	End   string
}

// Candidate is a not-yet-committed course built from raw form input.
// All fields are uninterpreted text except NoExam, which is the explicit
// "this course has no exam" opt-out.
type Candidate struct {
	Code      string
	Name      string
	Professor string
	Units     string
	NoExam    bool
	ExamDay   string
	ExamMonth string
	ExamYear  string
	ExamTime  string
	Sessions  []CandidateSession
}

// Validator checks candidates against the configured daily window and
// week. It is pure: Validate never mutates shared state.
type Validator struct {
	dayStart int // minutes since midnight
	dayEnd   int
	week     map[Weekday]bool
}

// NewValidator creates a Validator for the given window ("HH:MM" bounds)
// and ordered week.
func NewValidator(dayStart, dayEnd string, week []Weekday) *Validator {
	start, _ := ParseMinutes(dayStart)
	end, _ := ParseMinutes(dayEnd)
	wd := make(map[Weekday]bool, len(week))
	for _, d := range week {
		wd[Weekday(strings.ToLower(string(d)))] = true
	}
	return &Validator{dayStart: start, dayEnd: end, week: wd}
}

// Window returns the daily window bounds in minutes since midnight.
func (v *Validator) Window() (start, end int) {
	return v.dayStart, v.dayEnd
}

// Validate checks a candidate and returns the normalized course (no ID
// assigned). Rules short-circuit in a fixed order; every error names the
// offending field, per-session errors carry the 1-based session number.
// An unparsable units value is not an error, it coerces to 0.
func (v *Validator) Validate(c Candidate) (*Course, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	code := strings.TrimSpace(c.Code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	units, err := strconv.ParseFloat(strings.TrimSpace(c.Units), 64)
	if err != nil || units < 0 {
		units = 0
	}

	exam, err := v.validateExam(c)
	if err != nil {
		return nil, err
	}

	if len(c.Sessions) == 0 {
		return nil, ErrNoSessions
	}

	sessions := make([]Session, 0, len(c.Sessions))
	for i, s := range c.Sessions {
		normalized, err := v.validateSession(s)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i+1, err)
		}
		sessions = append(sessions, normalized)
	}

	return &Course{
		Code:      code,
		Name:      name,
		Professor: strings.TrimSpace(c.Professor),
		Units:     units,
		Sessions:  sessions,
		Exam:      exam,
	}, nil
}

func (v *Validator) validateExam(c Candidate) (Exam, error) {
	if c.NoExam {
		return Exam{Status: ExamNone}, nil
	}

	day := strings.TrimSpace(c.ExamDay)
	month := strings.TrimSpace(c.ExamMonth)
	year := strings.TrimSpace(c.ExamYear)
	examTime := strings.TrimSpace(c.ExamTime)

	if day == "" && month == "" && year == "" && examTime == "" {
		return Exam{Status: ExamUnspecified}, nil
	}
	if day == "" || month == "" || year == "" {
		return Exam{}, ErrIncompleteExam
	}

	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil ||
		d < 1 || d > 31 || m < 1 || m > 12 || y < MinExamYear {
		return Exam{}, ErrInvalidExamDate
	}

	if examTime == "" {
		return Exam{}, ErrIncompleteExam
	}
	if _, err := ParseMinutes(examTime); err != nil {
		return Exam{}, fmt.Errorf("exam time: %w", err)
	}

	return Exam{
		Status: ExamScheduled,
		Date:   fmt.Sprintf("%04d-%02d-%02d", y, m, d),
		Time:   Normalize(examTime),
	}, nil
}

func (v *Validator) validateSession(s CandidateSession) (Session, error) {
	day := Weekday(strings.ToLower(strings.TrimSpace(s.Day)))
	if !v.week[day] {
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownWeekday, s.Day)
	}

	start := strings.TrimSpace(s.Start)
	end := strings.TrimSpace(s.End)
	if start == "" || end == "" {
		return Session{}, ErrMissingSessionTime
	}

	startMin, err := ParseMinutes(start)
	if err != nil {
		return Session{}, err
	}
	endMin, err := ParseMinutes(end)
	if err != nil {
		return Session{}, err
	}

	if startMin >= endMin {
		return Session{}, ErrEndBeforeStart
	}
	if startMin < v.dayStart || endMin > v.dayEnd {
		return Session{}, fmt.Errorf("%w (%s-%s)",
			ErrOutOfWindow, MinutesToTime(v.dayStart), MinutesToTime(v.dayEnd))
	}

	return Session{
		Day:   day,
		Start: Normalize(start),
		End:   Normalize(end),
	}, nil
}
