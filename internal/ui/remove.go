package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) removeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a course by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}

			ctx := context.Background()
			if err := a.ensureLoaded(ctx); err != nil {
				return err
			}

			cr, err := a.coll.Get(id)
			if err != nil {
				return err
			}

			if !yes && !confirm(fmt.Sprintf("Delete %s %s?", cr.Code, cr.Name)) {
				fmt.Println("Cancelled.")
				return nil
			}

			if err := a.coll.Delete(id); err != nil {
				return err
			}
			if err := a.persist(ctx); err != nil {
				return err
			}

			fmt.Printf("%s #%d %s %s\n", formatOK("Deleted"), cr.ID, formatCode(cr.Code), cr.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without prompting")

	return cmd
}
