// Package ui implements the courseplan command line interface.
package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arashpm/courseplan/internal/config"
	"github.com/arashpm/courseplan/internal/course"
	"github.com/arashpm/courseplan/internal/db"
	"github.com/arashpm/courseplan/internal/planner"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  course.Store
	coll   *planner.Collection
	config *config.Config
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given store and config.
// A nil store is opened lazily from the configured backend.
func NewApp(store course.Store, cfg *config.Config) *App {
	a := &App{store: store, config: cfg, coll: planner.New()}

	a.root = &cobra.Command{
		Use:   "courseplan",
		Short: "A weekly course schedule planner",
		Long: `Courseplan keeps a university week: courses, their weekly
sessions, and exam slots. Adding or editing a course checks for session
clashes and warns about overlapping exams before anything is committed.`,
		SilenceUsage: true,
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.codesCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("courseplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	if !a.config.UI.Color {
		DisableColor()
	}
	return a.root.Execute()
}

// Close releases the store if one was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// ensureStore opens the configured store on first use.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}

	var err error
	switch a.config.Storage.Backend {
	case "json":
		a.store, err = db.NewJSONFile(a.config.Storage.FilePath)
	default:
		a.store, err = db.NewSQLite(a.config.Storage.DBPath)
	}
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	return nil
}

// ensureLoaded opens the store and seeds the collection from it.
func (a *App) ensureLoaded(ctx context.Context) error {
	if err := a.ensureStore(); err != nil {
		return err
	}

	snap, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	a.coll.Load(snap)
	return nil
}

// persist writes the collection back to the store. Persistence failures
// are reported but the in-memory state is already committed.
func (a *App) persist(ctx context.Context) error {
	if err := a.store.Save(ctx, a.coll.Snapshot()); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}
	return nil
}

// validator builds the course validator from the configured window.
func (a *App) validator() *course.Validator {
	return course.NewValidator(a.config.Planner.DayStart, a.config.Planner.DayEnd, a.config.Week())
}
