// Package planner owns the in-memory course collection and the
// add/edit/delete transitions over it, including conflict checks.
package planner

import (
	"fmt"
	"sync"

	"github.com/arashpm/courseplan/internal/course"
)

// Collection is the authoritative set of courses, keyed by id, plus the
// current selection. All mutation goes through proposals, Delete, or
// ReplaceAll; the mutex guarantees at most one in-flight mutation even
// when callers race.
type Collection struct {
	mu         sync.Mutex
	courses    []*course.Course
	nextID     int64
	selectedID int64
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{nextID: 1}
}

// Load seeds the collection from a persisted snapshot. The id counter is
// re-derived from the data so externally edited files cannot hand out a
// stale counter.
func (c *Collection) Load(snap course.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.courses = cloneAll(snap.Courses)
	c.nextID = reseed(snap.Courses, snap.NextID)
	c.selectedID = 0
}

// reseed returns max(existing ids)+1, or the persisted counter when it
// is already ahead.
func reseed(courses []*course.Course, nextID int64) int64 {
	var maxID int64
	for _, cr := range courses {
		if cr.ID > maxID {
			maxID = cr.ID
		}
	}
	if nextID > maxID {
		return nextID
	}
	return maxID + 1
}

// Snapshot returns a deep copy of the current state for persistence.
func (c *Collection) Snapshot() course.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return course.Snapshot{Courses: cloneAll(c.courses), NextID: c.nextID}
}

// Courses returns copies of all courses in insertion order.
func (c *Collection) Courses() []*course.Course {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneAll(c.courses)
}

// Get returns a copy of the course with the given id.
func (c *Collection) Get(id int64) (*course.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cr := findByID(c.courses, id); cr != nil {
		return cr.Clone(), nil
	}
	return nil, fmt.Errorf("%w: #%d", course.ErrCourseNotFound, id)
}

// Len returns the number of courses.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.courses)
}

// Select marks a course as selected.
func (c *Collection) Select(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if findByID(c.courses, id) == nil {
		return fmt.Errorf("%w: #%d", course.ErrCourseNotFound, id)
	}
	c.selectedID = id
	return nil
}

// SelectedID returns the selected course id, 0 when nothing is selected.
func (c *Collection) SelectedID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// ClearSelection drops the current selection.
func (c *Collection) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = 0
}

// Delete removes a course by id. Deleting the selected course clears the
// selection. No other course is touched.
func (c *Collection) Delete(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cr := range c.courses {
		if cr.ID == id {
			c.courses = append(c.courses[:i], c.courses[i+1:]...)
			if c.selectedID == id {
				c.selectedID = 0
			}
			return nil
		}
	}
	return fmt.Errorf("%w: #%d", course.ErrCourseNotFound, id)
}

// ReplaceAll swaps the whole collection, used by import after the
// incoming records validated. The previous state is untouched until this
// call, so a failed import never leaves a partial commit.
func (c *Collection) ReplaceAll(courses []*course.Course, nextID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.courses = cloneAll(courses)
	c.nextID = reseed(courses, nextID)
	c.selectedID = 0
}

func findByID(courses []*course.Course, id int64) *course.Course {
	for _, cr := range courses {
		if cr.ID == id {
			return cr
		}
	}
	return nil
}

func cloneAll(courses []*course.Course) []*course.Course {
	out := make([]*course.Course, len(courses))
	for i, cr := range courses {
		out[i] = cr.Clone()
	}
	return out
}
