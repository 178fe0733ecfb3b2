package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("some helpers failed to compile")

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Compile every helper in a definitions file and report errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.compileFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, ce := range set.Errors {
				fmt.Fprintln(out, singleLine(ce.Error()))
			}
			fmt.Fprintf(out, "%d compiled, %d failed\n", set.Len(), len(set.Errors))

			if set.HasErrors() {
				return errCheckFailed
			}
			return nil
		},
	}
}

// singleLine collapses runs of whitespace, including newlines, into one space.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
