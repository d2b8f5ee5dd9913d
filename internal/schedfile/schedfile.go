// Package schedfile reads and writes the planner's JSON schedule shape,
// including the legacy single-session layout older files used.
package schedfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/arashpm/courseplan/internal/course"
)

// Import errors.
var (
	ErrParse  = errors.New("schedule file is not valid JSON")
	ErrSchema = errors.New("schedule file has an invalid structure")
)

// SessionRecord is the wire form of one weekly session.
type SessionRecord struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Record is the wire form of one course. The flat Day/Start/End fields
// only appear in legacy files that predate multi-session courses.
//
// The exam fields are raw JSON because all three states live on the
// wire: absent (unspecified), null (explicitly no exam), string
// (scheduled). A typed pointer field cannot keep null and absent apart;
// encoding/json nils it for null without invoking any unmarshaler.
type Record struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Professor string          `json:"professor,omitempty"`
	Units     float64         `json:"units"`
	Sessions  []SessionRecord `json:"sessions,omitempty"`
	ExamDate  json.RawMessage `json:"exam_date,omitempty"`
	ExamTime  json.RawMessage `json:"exam_time,omitempty"`

	// Legacy flat session layout.
	Day   string `json:"day,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// File is the persisted shape: the course list plus the id counter.
type File struct {
	Courses []Record `json:"courses"`
	NextID  int64    `json:"nextId"`
}

// Decode parses schedule JSON. Both the persisted object shape and a
// bare course array (hand-authored export files) are accepted.
func Decode(data []byte) (File, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return File{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return File{Courses: records}, nil
	}

	var f File
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return f, nil
}

// ToSnapshot converts decoded records to domain courses, upgrading
// legacy records on the way. Any invalid record fails the whole
// conversion so imports never partially apply.
func ToSnapshot(f File) (course.Snapshot, error) {
	courses := make([]*course.Course, 0, len(f.Courses))
	for i, r := range f.Courses {
		cr, err := toCourse(upgrade(r))
		if err != nil {
			return course.Snapshot{}, fmt.Errorf("course %d: %w", i+1, err)
		}
		courses = append(courses, cr)
	}
	return course.Snapshot{Courses: courses, NextID: f.NextID}, nil
}

// upgrade wraps a legacy flat {day,start,end} record into the sessions
// list. The detection rule is exactly: has a day, lacks sessions.
func upgrade(r Record) Record {
	if r.Day != "" && len(r.Sessions) == 0 {
		r.Sessions = []SessionRecord{{Day: r.Day, Start: r.Start, End: r.End}}
	}
	r.Day, r.Start, r.End = "", "", ""
	return r
}

func toCourse(r Record) (*course.Course, error) {
	if r.Code == "" || r.Name == "" {
		return nil, fmt.Errorf("%w: code and name are required", ErrSchema)
	}
	if len(r.Sessions) == 0 {
		return nil, fmt.Errorf("%w: no sessions", ErrSchema)
	}

	sessions := make([]course.Session, len(r.Sessions))
	for i, s := range r.Sessions {
		if s.Day == "" {
			return nil, fmt.Errorf("%w: session %d has no day", ErrSchema, i+1)
		}
		sessions[i] = course.Session{
			Day:   course.Weekday(s.Day),
			Start: course.Normalize(s.Start),
			End:   course.Normalize(s.End),
		}
	}

	exam, err := toExam(r.ExamDate, r.ExamTime)
	if err != nil {
		return nil, err
	}

	return &course.Course{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		Professor: r.Professor,
		Units:     r.Units,
		Sessions:  sessions,
		Exam:      exam,
	}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func toExam(date, t json.RawMessage) (course.Exam, error) {
	switch {
	case date == nil:
		return course.Exam{Status: course.ExamUnspecified}, nil
	case isNull(date):
		return course.Exam{Status: course.ExamNone}, nil
	}

	var d string
	if err := json.Unmarshal(date, &d); err != nil {
		return course.Exam{}, fmt.Errorf("%w: exam_date must be a string or null", ErrSchema)
	}
	if t == nil || isNull(t) {
		// Date without time never passes validation; treat a stray one
		// in an external file as unspecified rather than rejecting it.
		return course.Exam{Status: course.ExamUnspecified}, nil
	}
	var tm string
	if err := json.Unmarshal(t, &tm); err != nil {
		return course.Exam{}, fmt.Errorf("%w: exam_time must be a string or null", ErrSchema)
	}

	return course.Exam{
		Status: course.ExamScheduled,
		Date:   d,
		Time:   course.Normalize(tm),
	}, nil
}

// FromSnapshot converts domain courses to the wire shape.
func FromSnapshot(snap course.Snapshot) File {
	records := make([]Record, len(snap.Courses))
	for i, cr := range snap.Courses {
		records[i] = fromCourse(cr)
	}
	return File{Courses: records, NextID: snap.NextID}
}

func fromCourse(cr *course.Course) Record {
	sessions := make([]SessionRecord, len(cr.Sessions))
	for i, s := range cr.Sessions {
		sessions[i] = SessionRecord{Day: string(s.Day), Start: s.Start, End: s.End}
	}

	r := Record{
		ID:        cr.ID,
		Code:      cr.Code,
		Name:      cr.Name,
		Professor: cr.Professor,
		Units:     cr.Units,
		Sessions:  sessions,
	}

	switch cr.Exam.Status {
	case course.ExamNone:
		r.ExamDate = json.RawMessage("null")
		r.ExamTime = json.RawMessage("null")
	case course.ExamScheduled:
		r.ExamDate = rawString(cr.Exam.Date)
		r.ExamTime = rawString(cr.Exam.Time)
	}
	return r
}

func rawString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// Encode renders a file as indented JSON.
func Encode(f File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling schedule: %w", err)
	}
	return append(data, '\n'), nil
}

// ReadFile loads and decodes a schedule file.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading schedule file: %w", err)
	}
	return Decode(data)
}

// WriteFile atomically writes a schedule file: write to a temp file in
// place, then rename over the target.
func WriteFile(path string, f File) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
