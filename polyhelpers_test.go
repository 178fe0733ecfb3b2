package polyhelpers_test

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-polyhelpers"
	"github.com/robbyt/go-polyhelpers/engines/mocks"
	risorCompiler "github.com/robbyt/go-polyhelpers/engines/risor/compiler"
	starlarkCompiler "github.com/robbyt/go-polyhelpers/engines/starlark/compiler"
	"github.com/robbyt/go-polyhelpers/engines/types"
	"github.com/robbyt/go-polyhelpers/platform/helper"
	"github.com/robbyt/go-polyhelpers/platform/script"
)

func newCompiler(
	t *testing.T,
	engine types.Type,
	opts ...polyhelpers.Option,
) *polyhelpers.HelperCompiler {
	t.Helper()
	allOpts := append([]polyhelpers.Option{polyhelpers.WithEngine(engine)}, opts...)
	hc, err := polyhelpers.NewHelperCompiler(allOpts...)
	require.NoError(t, err)
	require.Equal(t, engine, hc.Engine())
	return hc
}

func TestCompileHelperDefinitions(t *testing.T) {
	t.Parallel()

	t.Run("nil and empty input", func(t *testing.T) {
		t.Parallel()
		for _, defs := range [][]helper.Definition{nil, {}} {
			set := polyhelpers.CompileHelperDefinitions(defs)
			require.NotNil(t, set)
			assert.Empty(t, set.Helpers)
			assert.NotNil(t, set.Errors)
			assert.Empty(t, set.Errors)
		}
	})

	t.Run("add compiles and runs", func(t *testing.T) {
		t.Parallel()
		set := polyhelpers.CompileHelperDefinitions([]helper.Definition{
			{ID: 1, Name: "add", Parameters: "a,b", Body: "return a+b;"},
		})
		require.Empty(t, set.Errors)

		add, ok := set.Get("add")
		require.True(t, ok)
		got, err := add(t.Context(), 2, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got)
	})

	t.Run("bad body is reported", func(t *testing.T) {
		t.Parallel()
		set := polyhelpers.CompileHelperDefinitions([]helper.Definition{
			{ID: 2, Name: "bad", Body: "return (;"},
		})
		_, ok := set.Get("bad")
		assert.False(t, ok)

		require.Len(t, set.Errors, 1)
		ce := set.Errors[0]
		assert.Equal(t, 2, ce.ID)
		assert.Equal(t, "bad", ce.Name)
		assert.NotEmpty(t, ce.Message)
		assert.ErrorIs(t, ce, risorCompiler.ErrValidationFailed)
	})
}

// TestHelperCompiler_Engines runs the documented behaviour against every engine.
func TestHelperCompiler_Engines(t *testing.T) {
	t.Parallel()

	validationErr := map[types.Type]error{
		types.Risor:    risorCompiler.ErrValidationFailed,
		types.Starlark: starlarkCompiler.ErrValidationFailed,
	}

	for _, engine := range types.All() {
		t.Run(engine.String(), func(t *testing.T) {
			t.Parallel()

			t.Run("blank names are skipped silently", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{ID: 1, Name: ""},
					{ID: 2, Name: " "},
					{ID: 3, Name: "\t\n", Body: "return (;"},
					{ID: 4},
				})
				assert.Empty(t, set.Helpers)
				assert.Empty(t, set.Errors)
			})

			t.Run("add", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{ID: 1, Name: "add", Parameters: "a,b", Body: "return a+b;"},
				})
				require.Empty(t, set.Errors)

				got, err := set.Call(t.Context(), "add", 2, 3)
				require.NoError(t, err)
				assert.Equal(t, int64(5), got)
			})

			t.Run("name and parameters are trimmed", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{Name: "  mul  ", Parameters: " a , , b ,", Body: "\n  return a*b  \n"},
				})
				require.Empty(t, set.Errors)
				assert.Equal(t, []string{"mul"}, set.Names())

				got, err := set.Call(t.Context(), "mul", 4, 5)
				require.NoError(t, err)
				assert.Equal(t, int64(20), got)
			})

			t.Run("syntax error is collected", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{ID: 2, Name: " bad ", Body: "return (;"},
				})
				assert.Empty(t, set.Helpers)
				require.Len(t, set.Errors, 1)
				assert.Equal(t, 2, set.Errors[0].ID)
				assert.Equal(t, "bad", set.Errors[0].Name)
				assert.NotEmpty(t, set.Errors[0].Message)
				assert.ErrorIs(t, set.Errors[0], validationErr[engine])
			})

			t.Run("missing body returns a false-like value", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{ID: 5, Name: "nothing", Parameters: "x"},
					{ID: 6, Name: "blank", Body: "   "},
				})
				require.Empty(t, set.Errors)

				for _, name := range []string{"nothing", "blank"} {
					got, err := set.Call(t.Context(), name, 1)
					require.NoError(t, err)
					assert.Equal(t, false, got, name)
				}
			})

			t.Run("last definition wins", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{ID: 1, Name: "pick", Body: "return 1"},
					{ID: 2, Name: "pick", Body: "return 2"},
				})
				require.Empty(t, set.Errors)
				require.Equal(t, 1, set.Len())

				got, err := set.Call(t.Context(), "pick")
				require.NoError(t, err)
				assert.Equal(t, int64(2), got)
			})

			t.Run("failed redefinition keeps the earlier helper", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{ID: 1, Name: "pick", Body: "return 1"},
					{ID: 2, Name: "pick", Body: "return (;"},
				})
				require.Len(t, set.Errors, 1)
				assert.Equal(t, 2, set.Errors[0].ID)

				got, err := set.Call(t.Context(), "pick")
				require.NoError(t, err)
				assert.Equal(t, int64(1), got)
			})

			t.Run("one bad definition does not stop the rest", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{ID: "a", Name: "first", Body: "return 1"},
					{ID: "b", Name: "broken", Body: "return (;"},
					{ID: "c", Name: "second", Body: "return 2"},
					{ID: "d", Name: "broken2", Parameters: "1x", Body: "return 3"},
				})
				assert.Equal(t, []string{"first", "second"}, set.Names())
				require.Len(t, set.Errors, 2)
				assert.Equal(t, "b", set.Errors[0].ID)
				assert.Equal(t, "d", set.Errors[1].ID)
			})

			t.Run("globals", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine, polyhelpers.WithGlobals(map[string]any{"rate": 10}))
				set := hc.Compile([]helper.Definition{
					{Name: "scale", Parameters: "x", Body: "return x * rate"},
				})
				require.Empty(t, set.Errors)

				got, err := set.Call(t.Context(), "scale", 3)
				require.NoError(t, err)
				assert.Equal(t, int64(30), got)
			})

			t.Run("runtime errors are returned", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{Name: "oops", Parameters: "a", Body: `return a + "x"`},
				})
				require.Empty(t, set.Errors)

				_, err := set.Call(t.Context(), "oops", 1)
				require.ErrorIs(t, err, script.ErrExecutionFailed)
			})

			t.Run("concurrent calls", func(t *testing.T) {
				t.Parallel()
				hc := newCompiler(t, engine)
				set := hc.Compile([]helper.Definition{
					{Name: "sq", Parameters: "n", Body: "return n * n"},
				})
				require.Empty(t, set.Errors)

				var wg sync.WaitGroup
				for i := range 8 {
					wg.Add(1)
					go func() {
						defer wg.Done()
						got, err := set.Call(t.Context(), "sq", i)
						assert.NoError(t, err)
						assert.Equal(t, int64(i*i), got)
					}()
				}
				wg.Wait()
			})
		})
	}
}

func TestHelperCompiler_WithMockCompiler(t *testing.T) {
	t.Parallel()

	t.Run("sources are normalised before compiling", func(t *testing.T) {
		t.Parallel()
		exe := new(mocks.Executable)
		exe.On("Call", mock.Anything, []any{1}).Return("ok", nil)

		comp := new(mocks.Compiler)
		comp.On("FallbackBody").Return("FALLBACK")
		comp.On("Compile", script.Source{
			Name:       "f",
			Parameters: []string{"a", "b"},
			Body:       "FALLBACK",
		}).Return(exe, nil).Once()

		hc, err := polyhelpers.NewHelperCompiler(polyhelpers.WithCompiler(comp))
		require.NoError(t, err)

		set := hc.Compile([]helper.Definition{
			{Name: " ", Body: "ignored"},
			{ID: 9, Name: " f ", Parameters: "a, ,b", Body: "  "},
		})
		require.Empty(t, set.Errors)

		got, err := set.Call(t.Context(), "f", 1)
		require.NoError(t, err)
		assert.Equal(t, "ok", got)

		comp.AssertExpectations(t)
		exe.AssertExpectations(t)
	})

	t.Run("compiler errors keep their message", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("unexpected token ';'")

		comp := new(mocks.Compiler)
		comp.On("FallbackBody").Return("FALLBACK")
		comp.On("Compile", mock.Anything).Return(nil, cause)

		hc, err := polyhelpers.NewHelperCompiler(polyhelpers.WithCompiler(comp))
		require.NoError(t, err)

		set := hc.Compile([]helper.Definition{{ID: 3, Name: "x", Body: "return (;"}})
		require.Len(t, set.Errors, 1)
		assert.Equal(t, helper.CompileError{
			ID:      3,
			Name:    "x",
			Message: "unexpected token ';'",
			Err:     cause,
		}, set.Errors[0])
	})

	t.Run("nil executable is an error", func(t *testing.T) {
		t.Parallel()
		comp := new(mocks.Compiler)
		comp.On("FallbackBody").Return("FALLBACK")
		comp.On("Compile", mock.Anything).Return(nil, nil)

		hc, err := polyhelpers.NewHelperCompiler(polyhelpers.WithCompiler(comp))
		require.NoError(t, err)

		set := hc.Compile([]helper.Definition{{Name: "x"}})
		require.Len(t, set.Errors, 1)
		assert.ErrorIs(t, set.Errors[0], polyhelpers.ErrNilExecutable)
	})
}

func TestNewHelperCompiler(t *testing.T) {
	t.Parallel()

	t.Run("defaults to risor", func(t *testing.T) {
		t.Parallel()
		hc, err := polyhelpers.NewHelperCompiler()
		require.NoError(t, err)
		assert.Equal(t, types.Risor, hc.Engine())
		assert.Contains(t, hc.String(), "risor")
	})

	t.Run("option errors", func(t *testing.T) {
		t.Parallel()
		_, err := polyhelpers.NewHelperCompiler(polyhelpers.WithEngine("lua"))
		require.ErrorIs(t, err, polyhelpers.ErrUnknownEngine)

		_, err = polyhelpers.NewHelperCompiler(polyhelpers.WithCompiler(nil))
		require.Error(t, err)

		_, err = polyhelpers.NewHelperCompiler(polyhelpers.WithLogHandler(nil))
		require.Error(t, err)

		_, err = polyhelpers.NewHelperCompiler(polyhelpers.WithLogger(nil))
		require.Error(t, err)

		_, err = polyhelpers.NewHelperCompiler(
			polyhelpers.WithEngine(types.Starlark),
			polyhelpers.WithGlobals(map[string]any{"ch": make(chan int)}),
		)
		require.Error(t, err)
	})

	t.Run("logging is opt-in", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		hc, err := polyhelpers.NewHelperCompiler(polyhelpers.WithLogHandler(handler))
		require.NoError(t, err)

		hc.Compile([]helper.Definition{{Name: "bad", Body: "return (;"}})
		assert.Contains(t, buf.String(), "Helper rejected")
	})

	t.Run("with logger", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		hc, err := polyhelpers.NewHelperCompiler(
			polyhelpers.WithEngine(types.Starlark),
			polyhelpers.WithLogger(logger),
		)
		require.NoError(t, err)

		hc.Compile([]helper.Definition{{Name: "ok", Body: "return 1"}})
		assert.Contains(t, buf.String(), "Compiled helpers")
	})
}

func TestGetHelperCompletionEntries(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, polyhelpers.GetHelperCompletionEntries(nil))
		assert.Empty(t, polyhelpers.GetHelperCompletionEntries([]helper.Definition{}))
	})

	t.Run("blank names skipped", func(t *testing.T) {
		t.Parallel()
		got := polyhelpers.GetHelperCompletionEntries([]helper.Definition{
			{Name: ""}, {Name: "  "}, {ID: 1},
		})
		assert.Empty(t, got)
	})

	t.Run("bare and call forms", func(t *testing.T) {
		t.Parallel()
		got := polyhelpers.GetHelperCompletionEntries([]helper.Definition{
			{Name: "foo"}, {Name: "bar("},
		})
		assert.ElementsMatch(t, []string{"foo", "foo(", "bar("}, got)
	})

	t.Run("no duplicates", func(t *testing.T) {
		t.Parallel()
		got := polyhelpers.GetHelperCompletionEntries([]helper.Definition{
			{Name: "foo"}, {Name: "foo"}, {Name: " foo "}, {Name: "foo("},
		})
		assert.ElementsMatch(t, []string{"foo", "foo("}, got)
	})

	t.Run("independent of compile errors", func(t *testing.T) {
		t.Parallel()
		defs := []helper.Definition{{Name: "bad", Body: "return (;"}}
		set := polyhelpers.CompileHelperDefinitions(defs)
		require.Len(t, set.Errors, 1)
		assert.Equal(t, []string{"bad", "bad("}, polyhelpers.GetHelperCompletionEntries(defs))
	})
}
