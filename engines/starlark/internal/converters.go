package internal

import (
	"cmp"
	"fmt"
	"net/url"
	"reflect"
	"slices"

	starlarkLib "go.starlark.net/starlark"
)

// ToStarlarkTuple converts call arguments into a Starlark argument tuple.
func ToStarlarkTuple(args []any) (starlarkLib.Tuple, error) {
	tuple := make(starlarkLib.Tuple, len(args))
	for i, arg := range args {
		v, err := ToStarlarkValue(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to convert argument %d: %w", i, err)
		}
		tuple[i] = v
	}
	return tuple, nil
}

// ToStarlarkStringDict converts a map of Go values into predeclared Starlark globals.
func ToStarlarkStringDict(values map[string]any) (starlarkLib.StringDict, error) {
	dict := make(starlarkLib.StringDict, len(values))
	for k, v := range values {
		sv, err := ToStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("failed to convert global %q: %w", k, err)
		}
		dict[k] = sv
	}
	return dict, nil
}

// ToStarlarkValue converts a Go value into a Starlark value.
func ToStarlarkValue(v any) (starlarkLib.Value, error) {
	if v == nil {
		return starlarkLib.None, nil
	}

	switch val := v.(type) {
	case starlarkLib.Value:
		return val, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int32:
		return starlarkLib.MakeInt64(int64(val)), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case uint:
		return starlarkLib.MakeUint(val), nil
	case uint64:
		return starlarkLib.MakeUint64(val), nil
	case float32:
		return starlarkLib.Float(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case *url.URL:
		return starlarkLib.String(val.String()), nil
	case []string:
		elements := make([]starlarkLib.Value, len(val))
		for i, s := range val {
			elements[i] = starlarkLib.String(s)
		}
		return starlarkLib.NewList(elements), nil
	case []any:
		elements := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			var err error
			elements[i], err = ToStarlarkValue(elem)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
		}
		return starlarkLib.NewList(elements), nil
	case map[string]struct{}:
		// golang doesn't have a Set, but often a map[string]struct{} is used instead
		elements := starlarkLib.NewSet(len(val))
		for k := range val {
			if err := elements.Insert(starlarkLib.String(k)); err != nil {
				return nil, fmt.Errorf("failed to insert set element: %w", err)
			}
		}
		return elements, nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for k, v := range val {
			starlarkVal, err := ToStarlarkValue(v)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			if err := dict.SetKey(starlarkLib.String(k), starlarkVal); err != nil {
				return nil, fmt.Errorf("failed to set dict key: %w", err)
			}
		}
		return dict, nil
	default:
		return reflectToStarlark(reflect.ValueOf(v))
	}
}

// reflectToStarlark converts the remaining numeric widths, named basic types,
// typed slices and arrays, string-keyed maps and pointers to those.
func reflectToStarlark(rv reflect.Value) (starlarkLib.Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return starlarkLib.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlarkLib.MakeInt64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return starlarkLib.MakeUint64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return starlarkLib.Float(rv.Float()), nil
	case reflect.String:
		return starlarkLib.String(rv.String()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return starlarkLib.None, nil
		}
		return ToStarlarkValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		elements := make([]starlarkLib.Value, rv.Len())
		for i := range elements {
			elem, err := ToStarlarkValue(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
			elements[i] = elem
		}
		return starlarkLib.NewList(elements), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(a.String(), b.String())
		})
		dict := starlarkLib.NewDict(len(keys))
		for _, k := range keys {
			val, err := ToStarlarkValue(rv.MapIndex(k).Interface())
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			if err := dict.SetKey(starlarkLib.String(k.String()), val); err != nil {
				return nil, fmt.Errorf("failed to set dict key: %w", err)
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", rv.Type())
	}
}

// ToGoValue converts a Starlark value to a Go value.
func ToGoValue(v starlarkLib.Value) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch v := v.(type) {
	case starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(v), nil
	case starlarkLib.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("starlark int %s overflows int64", v.String())
		}
		return i, nil
	case starlarkLib.Float:
		return float64(v), nil
	case starlarkLib.String:
		return string(v), nil
	case *starlarkLib.List:
		return iterableToSlice(v, v.Len())
	case starlarkLib.Tuple:
		return iterableToSlice(v, v.Len())
	case *starlarkLib.Set:
		return iterableToSlice(v, v.Len())
	case *starlarkLib.Dict:
		// String keys keep the result JSON compatible
		dict := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			k, val := item[0], item[1]
			kStr, ok := k.(starlarkLib.String)
			if !ok {
				kStr = starlarkLib.String(k.String())
			}
			vv, err := ToGoValue(val)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			dict[string(kStr)] = vv
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported Starlark type %s", v.Type())
	}
}

func iterableToSlice(v starlarkLib.Iterable, size int) ([]any, error) {
	out := make([]any, 0, size)
	iter := v.Iterate()
	defer iter.Done()

	var elem starlarkLib.Value
	for iter.Next(&elem) {
		converted, err := ToGoValue(elem)
		if err != nil {
			return nil, fmt.Errorf("failed to convert element: %w", err)
		}
		out = append(out, converted)
	}
	return out, nil
}
