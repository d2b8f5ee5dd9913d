package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arashpm/courseplan/internal/course"
	"github.com/arashpm/courseplan/internal/schedfile"
)

// JSONFile implements course.Store on a single JSON file, the shape the
// planner has always persisted. Writes go through a temp file and
// rename so a crash never leaves a half-written schedule.
type JSONFile struct {
	path string
}

// NewJSONFile creates a JSON file store at the given path.
func NewJSONFile(path string) (*JSONFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	return &JSONFile{path: path}, nil
}

// Load reads the persisted snapshot. A missing file yields an empty
// snapshot; a corrupt one is backed up and reported.
func (j *JSONFile) Load(_ context.Context) (course.Snapshot, error) {
	data, err := os.ReadFile(j.path)
	if os.IsNotExist(err) {
		return course.Snapshot{}, nil
	}
	if err != nil {
		return course.Snapshot{}, fmt.Errorf("reading %s: %w", j.path, err)
	}

	f, err := schedfile.Decode(data)
	if err != nil {
		backupPath := j.path + ".corrupt"
		_ = os.Rename(j.path, backupPath)
		return course.Snapshot{}, fmt.Errorf("corrupt schedule in %s (backed up to %s): %w", j.path, backupPath, err)
	}

	snap, err := schedfile.ToSnapshot(f)
	if err != nil {
		return course.Snapshot{}, fmt.Errorf("loading %s: %w", j.path, err)
	}
	return snap, nil
}

// Save replaces the persisted snapshot atomically.
func (j *JSONFile) Save(_ context.Context, snap course.Snapshot) error {
	return schedfile.WriteFile(j.path, schedfile.FromSnapshot(snap))
}

// Close is a no-op for the file store.
func (j *JSONFile) Close() error {
	return nil
}
