package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robbyt/go-polyhelpers"
	"github.com/robbyt/go-polyhelpers/platform/helper/loader"
)

func newCompleteCmd(_ *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <file>",
		Short: "Print the autocompletion entries for a definitions file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := loader.FromDisk(args[0])
			if err != nil {
				return err
			}
			for _, entry := range polyhelpers.GetHelperCompletionEntries(defs) {
				fmt.Fprintln(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}
}
