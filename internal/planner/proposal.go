package planner

import (
	"errors"
	"fmt"

	"github.com/arashpm/courseplan/internal/course"
)

// ErrProposalResolved is returned when a proposal is committed or
// aborted twice.
var ErrProposalResolved = errors.New("proposal already resolved")

// Proposal is a validated add or edit that passed the hard checks but
// has not been committed. When exam conflicts exist the caller must get
// explicit confirmation before calling Commit; Abort discards the
// proposal with no side effect.
type Proposal struct {
	coll          *Collection
	candidate     *course.Course
	editID        int64 // 0 for add
	examConflicts []*course.Course
	resolved      bool
}

// ProposeAdd checks a validated candidate against the collection.
// Duplicate codes and class conflicts are hard failures; exam conflicts
// come back on the proposal for confirmation.
func (c *Collection) ProposeAdd(candidate *course.Course) (*Proposal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hasDuplicateCode(candidate.Code, c.courses, 0) {
		return nil, fmt.Errorf("%w: %q", course.ErrDuplicateCode, candidate.Code)
	}
	if HasClassConflict(candidate, c.courses, 0) {
		return nil, course.ErrClassConflict
	}

	return &Proposal{
		coll:          c,
		candidate:     candidate.Clone(),
		examConflicts: cloneAll(ExamConflicts(candidate, c.courses, 0)),
	}, nil
}

// ProposeEdit checks a validated candidate as a replacement for the
// course with the given id. The id is preserved; conflict and
// duplicate-code checks exclude the course's own prior state.
func (c *Collection) ProposeEdit(id int64, candidate *course.Course) (*Proposal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if findByID(c.courses, id) == nil {
		return nil, fmt.Errorf("%w: #%d", course.ErrCourseNotFound, id)
	}
	if hasDuplicateCode(candidate.Code, c.courses, id) {
		return nil, fmt.Errorf("%w: %q", course.ErrDuplicateCode, candidate.Code)
	}
	if HasClassConflict(candidate, c.courses, id) {
		return nil, course.ErrClassConflict
	}

	return &Proposal{
		coll:          c,
		candidate:     candidate.Clone(),
		editID:        id,
		examConflicts: cloneAll(ExamConflicts(candidate, c.courses, id)),
	}, nil
}

// RequiresConfirmation reports whether advisory exam conflicts exist.
func (p *Proposal) RequiresConfirmation() bool {
	return len(p.examConflicts) > 0
}

// ExamConflicts returns the colliding courses for the confirmation
// prompt.
func (p *Proposal) ExamConflicts() []*course.Course {
	return p.examConflicts
}

// Commit applies the proposal and returns the committed course with its
// id assigned. The hard checks are re-run under the collection lock: two
// proposals built from the same state cannot both land a double-booking,
// the second one fails here and the collection stays consistent.
func (p *Proposal) Commit() (*course.Course, error) {
	p.coll.mu.Lock()
	defer p.coll.mu.Unlock()

	if p.resolved {
		return nil, ErrProposalResolved
	}
	p.resolved = true

	if hasDuplicateCode(p.candidate.Code, p.coll.courses, p.editID) {
		return nil, fmt.Errorf("%w: %q", course.ErrDuplicateCode, p.candidate.Code)
	}
	if HasClassConflict(p.candidate, p.coll.courses, p.editID) {
		return nil, course.ErrClassConflict
	}

	if p.editID != 0 {
		existing := findByID(p.coll.courses, p.editID)
		if existing == nil {
			return nil, fmt.Errorf("%w: #%d", course.ErrCourseNotFound, p.editID)
		}
		committed := p.candidate.Clone()
		committed.ID = p.editID
		*existing = *committed.Clone()
		return committed, nil
	}

	committed := p.candidate.Clone()
	committed.ID = p.coll.nextID
	p.coll.nextID++
	p.coll.courses = append(p.coll.courses, committed.Clone())
	return committed, nil
}

// Abort discards the proposal. A user declining the exam-conflict
// confirmation ends up here: no mutation, no error.
func (p *Proposal) Abort() {
	p.resolved = true
}
