package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/robbyt/go-polyhelpers"
	"github.com/robbyt/go-polyhelpers/engines/types"
	"github.com/robbyt/go-polyhelpers/platform/helper"
	"github.com/robbyt/go-polyhelpers/platform/helper/loader"
)

// cli holds the values of the persistent flags shared by every subcommand.
type cli struct {
	logLevel string
	engine   string
	stderr   io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stderr: stderr}

	root := &cobra.Command{
		Use:          "polyhelpers",
		Short:        "Compile and inspect user-authored helper definitions",
		Long:         `polyhelpers loads helper definitions from a JSON, TOML or YAML file and compiles them with an embedded script engine.`,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	root.PersistentFlags().StringVar(&c.engine, "engine", types.Risor.String(), "script engine (risor|starlark)")

	root.AddCommand(newCheckCmd(c))
	root.AddCommand(newCompleteCmd(c))
	root.AddCommand(newCallCmd(c))
	return root
}

func (c *cli) logHandler() (slog.Handler, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", c.logLevel, err)
	}
	return slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}), nil
}

func (c *cli) helperCompiler() (*polyhelpers.HelperCompiler, error) {
	engine, err := types.Parse(c.engine)
	if err != nil {
		return nil, err
	}
	handler, err := c.logHandler()
	if err != nil {
		return nil, err
	}
	return polyhelpers.NewHelperCompiler(
		polyhelpers.WithEngine(engine),
		polyhelpers.WithLogHandler(handler),
	)
}

// compileFile loads the definitions in path and compiles them.
func (c *cli) compileFile(path string) (*helper.CompiledSet, error) {
	defs, err := loader.FromDisk(path)
	if err != nil {
		return nil, err
	}
	hc, err := c.helperCompiler()
	if err != nil {
		return nil, err
	}
	return hc.Compile(defs), nil
}
