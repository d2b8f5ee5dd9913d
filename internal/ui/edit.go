package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) editCmd() *cobra.Command {
	var flags candidateFlags

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Replace a course's fields, keeping its id",
		Long: `Edit a course by id. Every field is replaced with the given
flags; the course's own prior sessions and code are excluded from the
conflict and uniqueness checks, so re-submitting unchanged times never
clashes with itself.

Example:
  courseplan edit 3 --code=CS101 --name="Operating Systems" --units=3 \
    --session=monday,14:00,16:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}

			ctx := context.Background()
			if err := a.ensureLoaded(ctx); err != nil {
				return err
			}

			cr, err := a.validator().Validate(flags.candidate())
			if err != nil {
				return err
			}

			prop, err := a.coll.ProposeEdit(id, cr)
			if err != nil {
				return err
			}

			committed, err := a.resolveProposal(ctx, prop, flags.yes)
			if err != nil || committed == nil {
				return err
			}

			fmt.Printf("%s #%d %s %s — %s\n",
				formatOK("Updated"),
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
