package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func (a *App) codesCmd() *cobra.Command {
	var noCopy bool

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Copy course codes and names to the clipboard",
		Long: `Print every course as "CODE - NAME", one per line, deduplicated
by code, and copy the list to the clipboard for registration forms.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			if err := a.ensureLoaded(ctx); err != nil {
				return err
			}

			courses := a.coll.Courses()
			if len(courses) == 0 {
				fmt.Println("No courses to copy.")
				return nil
			}

			seen := make(map[string]bool, len(courses))
			var lines []string
			for _, cr := range courses {
				if seen[cr.Code] {
					continue
				}
				seen[cr.Code] = true
				lines = append(lines, cr.Code+" - "+cr.Name)
			}

			text := strings.Join(lines, "\n")
			fmt.Println(text)

			if noCopy {
				return nil
			}
			if err := clipboard.WriteAll(text); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Println(formatOK(fmt.Sprintf("Copied %d course codes to the clipboard.", len(lines))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "Print only, skip the clipboard")

	return cmd
}
