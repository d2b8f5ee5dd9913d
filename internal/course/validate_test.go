package course

import (
	"errors"
	"strings"
	"testing"
)

var testWeek = []Weekday{"saturday", "sunday", "monday", "tuesday", "wednesday"}

func testValidator() *Validator {
	return NewValidator("08:00", "20:00", testWeek)
}

func validCandidate() Candidate {
	return Candidate{
		Code:  "CS101",
		Name:  "Operating Systems",
		Units: "3",
		Sessions: []CandidateSession{
			{Day: "monday", Start: "10:00", End: "12:00"},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	cr, err := testValidator().Validate(validCandidate())
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cr.Code != "CS101" || cr.Name != "Operating Systems" {
		t.Errorf("Validate() code/name = %q/%q", cr.Code, cr.Name)
	}
	if cr.Units != 3 {
		t.Errorf("Validate() units = %v, want 3", cr.Units)
	}
	if len(cr.Sessions) != 1 || cr.Sessions[0].Day != "monday" {
		t.Fatalf("Validate() sessions = %+v", cr.Sessions)
	}
	if cr.Exam.Status != ExamUnspecified {
		t.Errorf("Validate() exam status = %q, want unspecified", cr.Exam.Status)
	}
}

func TestValidateNormalizesTimes(t *testing.T) {
	c := validCandidate()
	c.Sessions = []CandidateSession{{Day: "Monday", Start: "9", End: "10.5"}}

	cr, err := testValidator().Validate(c)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	s := cr.Sessions[0]
	if s.Day != "monday" || s.Start != "09:00" || s.End != "10:30" {
		t.Errorf("Validate() session = %+v, want monday 09:00-10:30", s)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Candidate)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(c *Candidate) { c.Name = "  " },
			wantErr: ErrEmptyName,
		},
		{
			name:    "empty code",
			mutate:  func(c *Candidate) { c.Code = "" },
			wantErr: ErrEmptyCode,
		},
		{
			name:    "no sessions",
			mutate:  func(c *Candidate) { c.Sessions = nil },
			wantErr: ErrNoSessions,
		},
		{
			name: "partial exam date",
			mutate: func(c *Candidate) {
				c.ExamYear = "1404"
			},
			wantErr: ErrIncompleteExam,
		},
		{
			name: "exam date without time",
			mutate: func(c *Candidate) {
				c.ExamYear, c.ExamMonth, c.ExamDay = "1404", "3", "15"
			},
			wantErr: ErrIncompleteExam,
		},
		{
			name: "exam month out of range",
			mutate: func(c *Candidate) {
				c.ExamYear, c.ExamMonth, c.ExamDay = "1404", "13", "15"
				c.ExamTime = "16:00"
			},
			wantErr: ErrInvalidExamDate,
		},
		{
			name: "exam year too small",
			mutate: func(c *Candidate) {
				c.ExamYear, c.ExamMonth, c.ExamDay = "99", "3", "15"
				c.ExamTime = "16:00"
			},
			wantErr: ErrInvalidExamDate,
		},
		{
			name: "non-numeric exam date",
			mutate: func(c *Candidate) {
				c.ExamYear, c.ExamMonth, c.ExamDay = "next", "3", "15"
				c.ExamTime = "16:00"
			},
			wantErr: ErrInvalidExamDate,
		},
		{
			name: "missing session time",
			mutate: func(c *Candidate) {
				c.Sessions[0].End = ""
			},
			wantErr: ErrMissingSessionTime,
		},
		{
			name: "unparsable session time",
			mutate: func(c *Candidate) {
				c.Sessions[0].Start = "ten"
			},
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name: "end before start",
			mutate: func(c *Candidate) {
				c.Sessions[0].Start, c.Sessions[0].End = "12:00", "10:00"
			},
			wantErr: ErrEndBeforeStart,
		},
		{
			name: "zero-length session",
			mutate: func(c *Candidate) {
				c.Sessions[0].Start, c.Sessions[0].End = "10:00", "10:00"
			},
			wantErr: ErrEndBeforeStart,
		},
		{
			name: "before the window",
			mutate: func(c *Candidate) {
				c.Sessions[0].Start, c.Sessions[0].End = "07:00", "09:00"
			},
			wantErr: ErrOutOfWindow,
		},
		{
			name: "after the window",
			mutate: func(c *Candidate) {
				c.Sessions[0].Start, c.Sessions[0].End = "19:00", "21:00"
			},
			wantErr: ErrOutOfWindow,
		},
		{
			name: "unknown weekday",
			mutate: func(c *Candidate) {
				c.Sessions[0].Day = "friday"
			},
			wantErr: ErrUnknownWeekday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)
			_, err := testValidator().Validate(c)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSessionErrorsNameTheSession(t *testing.T) {
	c := validCandidate()
	c.Sessions = append(c.Sessions, CandidateSession{Day: "monday", Start: "14:00", End: "13:00"})

	_, err := testValidator().Validate(c)
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("Validate() error = %v, want ErrEndBeforeStart", err)
	}
	if !strings.Contains(err.Error(), "session 2") {
		t.Errorf("Validate() error %q does not name session 2", err)
	}
}

func TestValidateCoercesUnits(t *testing.T) {
	tests := []struct {
		name  string
		units string
		want  float64
	}{
		{name: "numeric", units: "3", want: 3},
		{name: "fractional", units: "1.5", want: 1.5},
		{name: "non-numeric coerces to zero", units: "abc", want: 0},
		{name: "empty coerces to zero", units: "", want: 0},
		{name: "negative coerces to zero", units: "-2", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			c.Units = tt.units
			cr, err := testValidator().Validate(c)
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if cr.Units != tt.want {
				t.Errorf("Validate() units = %v, want %v", cr.Units, tt.want)
			}
		})
	}
}

func TestValidateExamStates(t *testing.T) {
	t.Run("explicit no exam", func(t *testing.T) {
		c := validCandidate()
		c.NoExam = true
		// Stray field values are cleared by the opt-out.
		c.ExamYear, c.ExamMonth, c.ExamDay, c.ExamTime = "1404", "3", "15", "16:00"

		cr, err := testValidator().Validate(c)
		if err != nil {
			t.Fatalf("Validate() unexpected error: %v", err)
		}
		if cr.Exam.Status != ExamNone || cr.Exam.Date != "" || cr.Exam.Time != "" {
			t.Errorf("Validate() exam = %+v, want cleared ExamNone", cr.Exam)
		}
	})

	t.Run("scheduled exam is normalized", func(t *testing.T) {
		c := validCandidate()
		c.ExamYear, c.ExamMonth, c.ExamDay = "1404", "3", "5"
		c.ExamTime = "16.5"

		cr, err := testValidator().Validate(c)
		if err != nil {
			t.Fatalf("Validate() unexpected error: %v", err)
		}
		if cr.Exam.Status != ExamScheduled {
			t.Fatalf("Validate() exam status = %q, want scheduled", cr.Exam.Status)
		}
		if cr.Exam.Date != "1404-03-05" {
			t.Errorf("Validate() exam date = %q, want 1404-03-05", cr.Exam.Date)
		}
		if cr.Exam.Time != "16:30" {
			t.Errorf("Validate() exam time = %q, want 16:30", cr.Exam.Time)
		}
	})

	t.Run("all blank is unspecified", func(t *testing.T) {
		cr, err := testValidator().Validate(validCandidate())
		if err != nil {
			t.Fatalf("Validate() unexpected error: %v", err)
		}
		if cr.Exam.Status != ExamUnspecified {
			t.Errorf("Validate() exam status = %q, want unspecified", cr.Exam.Status)
		}
	})
}
