package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arashpm/courseplan/internal/summary"
)

func (a *App) weekCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the weekly schedule",
		Long: `Display the week as an agenda: every configured day with its
sessions sorted by start time, plus the exam slot of each course and the
unit totals.`,
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

			week := summary.BuildWeekOverview(courses, a.config.Week())
			ruleWidth := min(termWidth(), 74)

			for _, day := range week.Days {
				fmt.Printf("\n  %s\n", formatHeader(strings.ToUpper(string(day.Name))))
				if len(day.Entries) == 0 {
					fmt.Println(formatMuted("    —"))
					continue
				}
				for _, e := range day.Entries {
					exam := ExamText(e.Course)
					fmt.Printf("    %s-%s  %s  %-24s %s\n",
						e.Session.Start,
						e.Session.End,
						formatCode(e.Course.Code),
						e.Course.Name,
						formatMuted("exam: "+exam),
					)
				}
			}

			fmt.Println()
			fmt.Println(strings.Repeat("─", ruleWidth))
			fmt.Println(formatMuted(TotalsLine(week.Totals)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
