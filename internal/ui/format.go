package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arashpm/courseplan/internal/course"
	"github.com/arashpm/courseplan/internal/summary"
)

// ExamText renders a course's exam slot for display: a dash for an
// unspecified exam, an explicit marker for the no-exam opt-out, and the
// date and time otherwise.
func ExamText(cr *course.Course) string {
	switch cr.Exam.Status {
	case course.ExamNone:
		return "no exam"
	case course.ExamScheduled:
		return cr.Exam.Date + " " + cr.Exam.Time
	default:
		return "—"
	}
}

// SessionText renders one session as "day start-end".
func SessionText(s course.Session) string {
	return fmt.Sprintf("%s %s-%s", s.Day, s.Start, s.End)
}

// SessionsText renders all sessions of a course on one line.
func SessionsText(cr *course.Course) string {
	parts := make([]string, len(cr.Sessions))
	for i, s := range cr.Sessions {
		parts[i] = SessionText(s)
	}
	return strings.Join(parts, ", ")
}

// FormatUnits renders a unit count without trailing zeros.
func FormatUnits(u float64) string {
	return strconv.FormatFloat(u, 'f', -1, 64)
}

// TotalsLine renders the collection footer.
func TotalsLine(t summary.Totals) string {
	return fmt.Sprintf("Units: %s | Courses: %d | Sessions: %d",
		FormatUnits(t.Units), t.Courses, t.Sessions)
}

// conflictNames joins course names for the exam conflict prompt.
func conflictNames(courses []*course.Course) string {
	names := make([]string, len(courses))
	for i, cr := range courses {
		names[i] = cr.Name
	}
	return strings.Join(names, ", ")
}
