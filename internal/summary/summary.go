// Package summary provides aggregate views over the course collection.
package summary

import (
	"sort"

	"github.com/arashpm/courseplan/internal/course"
)

// Totals holds the collection footer numbers.
type Totals struct {
	Units    float64
	Courses  int
	Sessions int
}

// Collect sums units, courses, and sessions across the collection.
func Collect(courses []*course.Course) Totals {
	t := Totals{Courses: len(courses)}
	for _, cr := range courses {
		t.Units += cr.Units
		t.Sessions += len(cr.Sessions)
	}
	return t
}

// Entry is one session placed on the weekly agenda.
type Entry struct {
	Course       *course.Course
	Session      course.Session
	StartMinutes int
	EndMinutes   int
}

// Day is one column of the weekly agenda.
type Day struct {
	Name    course.Weekday
	Entries []Entry
}

// WeekOverview is the full weekly agenda plus totals.
type WeekOverview struct {
	Days   []Day
	Totals Totals
}

// BuildWeekOverview groups every session under its weekday, in the
// configured week order, sorted by start time. Sessions on a day outside
// the configured week are dropped from the agenda (they still count in
// the totals).
func BuildWeekOverview(courses []*course.Course, week []course.Weekday) WeekOverview {
	byDay := make(map[course.Weekday][]Entry, len(week))
	for _, cr := range courses {
		for _, sess := range cr.Sessions {
			start, err1 := sess.StartMinutes()
			end, err2 := sess.EndMinutes()
			if err1 != nil || err2 != nil {
				continue
			}
			byDay[sess.Day] = append(byDay[sess.Day], Entry{
				Course:       cr,
				Session:      sess,
				StartMinutes: start,
				EndMinutes:   end,
			})
		}
	}

	days := make([]Day, len(week))
	for i, name := range week {
		entries := byDay[name]
		sort.SliceStable(entries, func(a, b int) bool {
			if entries[a].StartMinutes != entries[b].StartMinutes {
				return entries[a].StartMinutes < entries[b].StartMinutes
			}
			return entries[a].Course.Code < entries[b].Course.Code
		})
		days[i] = Day{Name: name, Entries: entries}
	}

	return WeekOverview{Days: days, Totals: Collect(courses)}
}
