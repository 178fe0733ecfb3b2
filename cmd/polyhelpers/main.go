// Command polyhelpers checks helper definition files, lists their completion
// entries and calls individual helpers from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
