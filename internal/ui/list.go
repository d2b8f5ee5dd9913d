package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/arashpm/courseplan/internal/summary"
)

func (a *App) listCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all courses",
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			ctx := context.Background()
			if err := a.ensureLoaded(ctx); err != nil {
				return err
			}

			courses := a.coll.Courses()
			if len(courses) == 0 {
				fmt.Println("No courses yet. Add one with: courseplan add")
				return nil
			}

			headerStyle := lipgloss.NewStyle().Bold(true)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle.Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				}).
				Headers("ID", "CODE", "NAME", "PROF", "UNITS", "SESSIONS", "EXAM")

			for _, cr := range courses {
				t.Row(
					fmt.Sprintf("%d", cr.ID),
					cr.Code,
					cr.Name,
					cr.Professor,
					FormatUnits(cr.Units),
					SessionsText(cr),
					ExamText(cr),
				)
			}

			fmt.Println(t.Render())
			fmt.Println(formatMuted(TotalsLine(summary.Collect(courses))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
