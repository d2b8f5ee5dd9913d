package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arashpm/courseplan/internal/schedfile"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.json]",
		Short: "Replace the schedule with courses from a JSON file",
		Long: `Import a schedule from JSON. Both the persisted shape
({"courses": [...], "nextId": N}) and a bare course array are accepted;
old files where a course has a single flat day/start/end instead of a
sessions list are upgraded on the way in.

The import is all-or-nothing: any invalid record aborts it and the
current schedule is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.ensureLoaded(ctx); err != nil {
				return err
			}

			f, err := schedfile.ReadFile(path)
			if err != nil {
				return err
			}
			snap, err := schedfile.ToSnapshot(f)
			if err != nil {
				return err
			}

			a.coll.ReplaceAll(snap.Courses, snap.NextID)
			if err := a.persist(ctx); err != nil {
				return err
			}

			fmt.Printf("%s %d courses from %s\n", formatOK("Imported"), len(snap.Courses), path)
			return nil
		},
	}

	return cmd
}

func (a *App) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file.json]",
		Short: "Write the schedule to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.ensureLoaded(ctx); err != nil {
				return err
			}

			snap := a.coll.Snapshot()
			if err := schedfile.WriteFile(path, schedfile.FromSnapshot(snap)); err != nil {
				return err
			}

			fmt.Printf("%s %d courses to %s\n", formatOK("Exported"), len(snap.Courses), path)
			return nil
		},
	}

	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
