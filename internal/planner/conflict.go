package planner

import "github.com/arashpm/courseplan/internal/course"

// HasClassConflict reports whether any candidate session overlaps a
// session of another course on the same weekday. ignoreID excludes the
// course being edited so it cannot collide with its own prior state.
//
// This is a pairwise scan over every session of every course. A term
// holds a handful of courses, so nothing smarter is needed, but the
// predicate is kept free of collection internals in case it ever is.
func HasClassConflict(candidate *course.Course, existing []*course.Course, ignoreID int64) bool {
	for _, ns := range candidate.Sessions {
		start, err1 := ns.StartMinutes()
		end, err2 := ns.EndMinutes()
		if err1 != nil || err2 != nil {
			continue
		}
		for _, cr := range existing {
			if cr.ID == ignoreID {
				continue
			}
			for _, es := range cr.Sessions {
				if es.Day != ns.Day {
					continue
				}
				es1, err1 := es.StartMinutes()
				es2, err2 := es.EndMinutes()
				if err1 != nil || err2 != nil {
					continue
				}
				if course.Overlap(start, end, es1, es2) {
					return true
				}
			}
		}
	}
	return false
}

// ExamConflicts returns every other course whose exam window overlaps
// the candidate's, using the fixed exam duration on both sides. Courses
// without a scheduled exam, and courses whose exam data cannot be
// parsed, are skipped rather than reported. The result is advisory:
// callers surface it for confirmation instead of aborting.
func ExamConflicts(candidate *course.Course, existing []*course.Course, ignoreID int64) []*course.Course {
	aStart, aEnd, ok := candidate.ExamWindow()
	if !ok {
		return nil
	}

	var out []*course.Course
	for _, cr := range existing {
		if cr.ID == ignoreID {
			continue
		}
		bStart, bEnd, ok := cr.ExamWindow()
		if !ok {
			continue
		}
		if course.Overlap(aStart, aEnd, bStart, bEnd) {
			out = append(out, cr)
		}
	}
	return out
}

// hasDuplicateCode reports whether another course already uses code.
func hasDuplicateCode(code string, existing []*course.Course, ignoreID int64) bool {
	for _, cr := range existing {
		if cr.ID != ignoreID && cr.Code == code {
			return true
		}
	}
	return false
}
