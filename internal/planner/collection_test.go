package planner

import (
	"errors"
	"testing"

	"github.com/arashpm/courseplan/internal/course"
)

func mustAdd(t *testing.T, coll *Collection, c *course.Course) *course.Course {
	t.Helper()
	prop, err := coll.ProposeAdd(c)
	if err != nil {
		t.Fatalf("ProposeAdd(%s) error: %v", c.Code, err)
	}
	committed, err := prop.Commit()
	if err != nil {
		t.Fatalf("Commit(%s) error: %v", c.Code, err)
	}
	return committed
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	coll := New()

	a := mustAdd(t, coll, mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))
	b := mustAdd(t, coll, mkCourse(0, "CS102", ses("tuesday", "10:00", "12:00")))
	c := mustAdd(t, coll, mkCourse(0, "CS103", ses("wednesday", "10:00", "12:00")))

	if a.ID != 1 || b.ID != 2 || c.ID != 3 {
		t.Errorf("ids = %d, %d, %d, want 1, 2, 3", a.ID, b.ID, c.ID)
	}
	if coll.Len() != 3 {
		t.Errorf("Len() = %d, want 3", coll.Len())
	}
}

func TestAddRejectsDuplicateCode(t *testing.T) {
	coll := New()
	mustAdd(t, coll, mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))

	_, err := coll.ProposeAdd(mkCourse(0, "CS101", ses("tuesday", "10:00", "12:00")))
	if !errors.Is(err, course.ErrDuplicateCode) {
		t.Fatalf("ProposeAdd() error = %v, want ErrDuplicateCode", err)
	}
	if coll.Len() != 1 {
		t.Errorf("Len() = %d after rejection, want 1", coll.Len())
	}
}

func TestAddRejectsClassConflict(t *testing.T) {
	coll := New()
	mustAdd(t, coll, mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))

	_, err := coll.ProposeAdd(mkCourse(0, "CS200", ses("monday", "11:00", "13:00")))
	if !errors.Is(err, course.ErrClassConflict) {
		t.Fatalf("ProposeAdd() error = %v, want ErrClassConflict", err)
	}
	if coll.Len() != 1 {
		t.Errorf("Len() = %d after rejection, want 1", coll.Len())
	}
}

func TestAddWithExamConflictNeedsConfirmation(t *testing.T) {
	coll := New()
	mustAdd(t, coll, withExam(mkCourse(0, "CS101", ses("monday", "10:00", "12:00")), "1404-03-15", "09:00"))

	candidate := withExam(mkCourse(0, "CS102", ses("tuesday", "10:00", "12:00")), "1404-03-15", "10:30")
	prop, err := coll.ProposeAdd(candidate)
	if err != nil {
		t.Fatalf("ProposeAdd() error: %v", err)
	}
	if !prop.RequiresConfirmation() {
		t.Fatal("RequiresConfirmation() = false, want true")
	}
	if got := prop.ExamConflicts(); len(got) != 1 || got[0].Code != "CS101" {
		t.Fatalf("ExamConflicts() = %v, want CS101", got)
	}

	// Declining leaves the collection untouched.
	prop.Abort()
	if coll.Len() != 1 {
		t.Errorf("Len() = %d after abort, want 1", coll.Len())
	}
	if _, err := prop.Commit(); !errors.Is(err, ErrProposalResolved) {
		t.Errorf("Commit() after Abort() error = %v, want ErrProposalResolved", err)
	}
}

func TestCommitIsSingleShot(t *testing.T) {
	coll := New()
	prop, err := coll.ProposeAdd(mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))
	if err != nil {
		t.Fatalf("ProposeAdd() error: %v", err)
	}
	if _, err := prop.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if _, err := prop.Commit(); !errors.Is(err, ErrProposalResolved) {
		t.Fatalf("second Commit() error = %v, want ErrProposalResolved", err)
	}
	if coll.Len() != 1 {
		t.Errorf("Len() = %d, want 1", coll.Len())
	}
}

func TestCommitRechecksStaleProposals(t *testing.T) {
	coll := New()

	// Both proposals are built from the same empty state.
	p1, err := coll.ProposeAdd(mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))
	if err != nil {
		t.Fatalf("ProposeAdd() error: %v", err)
	}
	p2, err := coll.ProposeAdd(mkCourse(0, "CS102", ses("monday", "11:00", "13:00")))
	if err != nil {
		t.Fatalf("ProposeAdd() error: %v", err)
	}

	if _, err := p1.Commit(); err != nil {
		t.Fatalf("first Commit() error: %v", err)
	}
	if _, err := p2.Commit(); !errors.Is(err, course.ErrClassConflict) {
		t.Fatalf("stale Commit() error = %v, want ErrClassConflict", err)
	}
	if coll.Len() != 1 {
		t.Errorf("Len() = %d, want 1", coll.Len())
	}
}

func TestEditPreservesID(t *testing.T) {
	coll := New()
	added := mustAdd(t, coll, mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))
	mustAdd(t, coll, mkCourse(0, "CS102", ses("tuesday", "10:00", "12:00")))

	replacement := mkCourse(0, "CS101", ses("monday", "14:00", "16:00"))
	replacement.Name = "Operating Systems II"
	prop, err := coll.ProposeEdit(added.ID, replacement)
	if err != nil {
		t.Fatalf("ProposeEdit() error: %v", err)
	}
	committed, err := prop.Commit()
	if err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if committed.ID != added.ID {
		t.Errorf("committed id = %d, want %d", committed.ID, added.ID)
	}

	got, err := coll.Get(added.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "Operating Systems II" || got.Sessions[0].Start != "14:00" {
		t.Errorf("Get() = %+v, edit did not land", got)
	}
	if coll.Len() != 2 {
		t.Errorf("Len() = %d, want 2", coll.Len())
	}
}

func TestEditRejections(t *testing.T) {
	coll := New()
	mustAdd(t, coll, mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))
	mustAdd(t, coll, mkCourse(0, "CS102", ses("tuesday", "10:00", "12:00")))

	t.Run("unknown id", func(t *testing.T) {
		_, err := coll.ProposeEdit(99, mkCourse(0, "CS200", ses("sunday", "10:00", "12:00")))
		if !errors.Is(err, course.ErrCourseNotFound) {
			t.Errorf("ProposeEdit() error = %v, want ErrCourseNotFound", err)
		}
	})

	t.Run("code taken by another course", func(t *testing.T) {
		_, err := coll.ProposeEdit(1, mkCourse(0, "CS102", ses("monday", "10:00", "12:00")))
		if !errors.Is(err, course.ErrDuplicateCode) {
			t.Errorf("ProposeEdit() error = %v, want ErrDuplicateCode", err)
		}
	})

	t.Run("keeping its own code is fine", func(t *testing.T) {
		prop, err := coll.ProposeEdit(1, mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))
		if err != nil {
			t.Fatalf("ProposeEdit() error: %v", err)
		}
		prop.Abort()
	})

	t.Run("moving onto another course", func(t *testing.T) {
		_, err := coll.ProposeEdit(1, mkCourse(0, "CS101", ses("tuesday", "11:00", "12:00")))
		if !errors.Is(err, course.ErrClassConflict) {
			t.Errorf("ProposeEdit() error = %v, want ErrClassConflict", err)
		}
	})
}

func TestDelete(t *testing.T) {
	coll := New()
	a := mustAdd(t, coll, mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))
	b := mustAdd(t, coll, mkCourse(0, "CS102", ses("tuesday", "10:00", "12:00")))

	if err := coll.Select(a.ID); err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if err := coll.Delete(a.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if coll.SelectedID() != 0 {
		t.Errorf("SelectedID() = %d after deleting selection, want 0", coll.SelectedID())
	}
	if _, err := coll.Get(a.ID); !errors.Is(err, course.ErrCourseNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrCourseNotFound", err)
	}
	if _, err := coll.Get(b.ID); err != nil {
		t.Errorf("Get(other) error = %v, other course was touched", err)
	}
	if err := coll.Delete(a.ID); !errors.Is(err, course.ErrCourseNotFound) {
		t.Errorf("Delete(deleted) error = %v, want ErrCourseNotFound", err)
	}

	// Freed ids are not reused.
	c := mustAdd(t, coll, mkCourse(0, "CS103", ses("monday", "10:00", "12:00")))
	if c.ID != 3 {
		t.Errorf("id after delete = %d, want 3", c.ID)
	}
}

func TestLoadReseedsIDCounter(t *testing.T) {
	tests := []struct {
		name       string
		snap       course.Snapshot
		wantNextID int64
	}{
		{
			name: "counter derived from max id",
			snap: course.Snapshot{
				Courses: []*course.Course{
					mkCourse(7, "CS101", ses("monday", "10:00", "12:00")),
					mkCourse(2, "CS102", ses("tuesday", "10:00", "12:00")),
				},
				NextID: 1,
			},
			wantNextID: 8,
		},
		{
			name: "persisted counter ahead of the data",
			snap: course.Snapshot{
				Courses: []*course.Course{mkCourse(2, "CS101", ses("monday", "10:00", "12:00"))},
				NextID:  40,
			},
			wantNextID: 40,
		},
		{
			name:       "empty snapshot",
			snap:       course.Snapshot{},
			wantNextID: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := New()
			coll.Load(tt.snap)
			added := mustAdd(t, coll, mkCourse(0, "CS900", ses("sunday", "08:00", "09:00")))
			if added.ID != tt.wantNextID {
				t.Errorf("next assigned id = %d, want %d", added.ID, tt.wantNextID)
			}
		})
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	coll := New()
	mustAdd(t, coll, mkCourse(0, "CS101", ses("monday", "10:00", "12:00")))

	snap := coll.Snapshot()
	snap.Courses[0].Code = "MUTATED"
	snap.Courses[0].Sessions[0].Start = "00:00"

	got, err := coll.Get(1)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Code != "CS101" || got.Sessions[0].Start != "10:00" {
		t.Errorf("Get() = %+v, snapshot mutation leaked into the collection", got)
	}
}

func TestReplaceAll(t *testing.T) {
	coll := New()
	mustAdd(t, coll, mkCourse(0, "OLD1", ses("monday", "10:00", "12:00")))
	if err := coll.Select(1); err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	coll.ReplaceAll([]*course.Course{
		mkCourse(5, "NEW1", ses("tuesday", "10:00", "12:00")),
	}, 1)

	if coll.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", coll.Len())
	}
	if _, err := coll.Get(5); err != nil {
		t.Errorf("Get(5) error = %v", err)
	}
	if coll.SelectedID() != 0 {
		t.Errorf("SelectedID() = %d after ReplaceAll, want 0", coll.SelectedID())
	}
	added := mustAdd(t, coll, mkCourse(0, "NEW2", ses("monday", "10:00", "12:00")))
	if added.ID != 6 {
		t.Errorf("id after ReplaceAll = %d, want 6", added.ID)
	}
}
