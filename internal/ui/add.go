package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) addCmd() *cobra.Command {
	var flags candidateFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new course",
		Long: `Add a course with one or more weekly sessions.

The add is rejected when the code is already taken or a session clashes
with another course. Overlapping exam times only warn; confirm (or pass
--yes) to schedule anyway.

Example:
  courseplan add --code=CS101 --name="Operating Systems" --units=3 \
    --session=monday,10:00,12:00 --session=wednesday,10,11.5 \
    --exam-date=1404-03-15 --exam-time=16`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			if err := a.ensureLoaded(ctx); err != nil {
				return err
			}

			cr, err := a.validator().Validate(flags.candidate())
			if err != nil {
				return err
			}

			prop, err := a.coll.ProposeAdd(cr)
			if err != nil {
				return err
			}

			committed, err := a.resolveProposal(ctx, prop, flags.yes)
			if err != nil || committed == nil {
				return err
			}

			fmt.Printf("%s #%d %s %s — %s\n",
				formatOK("Added"),
				committed.ID,
				formatCode(committed.Code),
				committed.Name,
				SessionsText(committed),
			)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
