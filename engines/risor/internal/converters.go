package internal

import (
	"fmt"
	"maps"
	"slices"

	risorLib "github.com/risor-io/risor"
	rObj "github.com/risor-io/risor/object"

	"github.com/robbyt/go-polyhelpers/platform/script"
)

// BindArgs returns exactly n arguments: missing ones are nil and surplus ones dropped.
func BindArgs(n int, args []any) []any {
	bound := make([]any, n)
	copy(bound, args)
	return bound
}

// ConvertToRisorOptions converts the call arguments and the compiler-level globals
// into Risor VM options. The arguments are passed as a single list under argsKey.
//
// For example, with argsKey "polyhelper_args", args [2, 3] and globals {"rate": 0.2}:
//
//	[]risorLib.Option{
//	  risorLib.WithGlobal("rate", 0.2),
//	  risorLib.WithGlobal("polyhelper_args", []any{2, 3}),
//	}
func ConvertToRisorOptions(argsKey string, args []any, globals map[string]any) []risorLib.Option {
	opts := make([]risorLib.Option, 0, len(globals)+1)
	for _, k := range slices.Sorted(maps.Keys(globals)) {
		opts = append(opts, risorLib.WithGlobal(k, globals[k]))
	}
	return append(opts, risorLib.WithGlobal(argsKey, args))
}

// ConvertResult turns the value returned by a Risor program into a Go value.
func ConvertResult(obj rObj.Object) (any, error) {
	if obj == nil {
		return nil, nil
	}

	switch obj.Type() {
	case "error":
		return nil, fmt.Errorf("%w: %s", script.ErrExecutionFailed, obj.Inspect())
	case "function", "builtin":
		return nil, fmt.Errorf("%w: %s", script.ErrUnsupportedResult, obj.Inspect())
	}

	return obj.Interface(), nil
}
