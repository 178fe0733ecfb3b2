package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCallCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "call <file> <name> [args...]",
		Short: "Compile a definitions file and call one helper",
		Long: `Compile a definitions file and call one helper. Each argument is decoded as a
JSON value when possible (numbers, booleans, null, quoted strings, lists and
objects) and passed as a plain string otherwise. The result is printed as JSON.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.compileFile(args[0])
			if err != nil {
				return err
			}

			name := args[1]
			if _, ok := set.Get(name); !ok {
				for _, ce := range set.Errors {
					if ce.Name == name {
						return ce
					}
				}
			}

			callArgs := make([]any, 0, len(args)-2)
			for _, raw := range args[2:] {
				callArgs = append(callArgs, parseArg(raw))
			}

			result, err := set.Call(cmd.Context(), name, callArgs...)
			if err != nil {
				return err
			}

			encoded, err := json.Marshal(result)
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}

// parseArg decodes raw as JSON, keeping integers as int64.
func parseArg(raw string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	return normalizeNumbers(v)
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i, elem := range val {
			val[i] = normalizeNumbers(elem)
		}
		return val
	case map[string]any:
		for k, elem := range val {
			val[k] = normalizeNumbers(elem)
		}
		return val
	default:
		return v
	}
}
