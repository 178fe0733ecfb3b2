package compile

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/resolve"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/robbyt/go-polyhelpers/engines/starlark/internal"
)

const (
	// EntryPoint is the name of the def wrapping a helper body.
	EntryPoint = "polyhelper"

	indent = "    "
)

// WrapSource builds a Starlark file declaring the helper body as a def taking params.
// Every body line is indented one level, so relative indentation is preserved.
// Lines that continue a triple-quoted string are copied as is, since they are
// part of the string's value.
func WrapSource(params []string, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "def %s(%s):\n", EntryPoint, strings.Join(params, ", "))

	open := ""
	for line := range strings.SplitSeq(body, "\n") {
		inString := open != ""
		open = scanLine(line, open)
		if open == "" {
			line = strings.TrimRight(line, " \t\r")
		}
		if !inString && line != "" {
			b.WriteString(indent)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// scanLine returns the triple quote still open at the end of line, given the one
// open at its start ("" when none). Comments and single-line strings are skipped.
func scanLine(line, open string) string {
	for i := 0; i < len(line); i++ {
		if open != "" {
			switch {
			case line[i] == '\\':
				i++
			case strings.HasPrefix(line[i:], open):
				i += len(open) - 1
				open = ""
			}
			continue
		}

		switch c := line[i]; c {
		case '#':
			return ""
		case '"', '\'':
			if triple := strings.Repeat(string(c), 3); strings.HasPrefix(line[i:], triple) {
				open = triple
				i += 2
				continue
			}
			i = skipQuoted(line, i)
		}
	}
	return open
}

// skipQuoted returns the index of the quote closing the single-line string that
// starts at line[start], or the last index when the string is unterminated.
func skipQuoted(line string, start int) int {
	quote := line[start]
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return len(line) - 1
}

// bodyPosition maps a position in the wrapped file onto the helper body. The def
// line keeps line 1, since only parameter errors point at it.
func bodyPosition(pos syntax.Position) syntax.Position {
	if pos.Line > 1 {
		pos.Line--
		if pos.Col > int32(len(indent)) {
			pos.Col -= int32(len(indent))
		}
	}
	return pos
}

// bodyError rewrites the positions of parse and resolve errors with bodyPosition.
func bodyError(err error) error {
	var syntaxErr syntax.Error
	if errors.As(err, &syntaxErr) {
		syntaxErr.Pos = bodyPosition(syntaxErr.Pos)
		return syntaxErr
	}

	var resolveErrs resolve.ErrorList
	if errors.As(err, &resolveErrs) {
		mapped := make(resolve.ErrorList, len(resolveErrs))
		for i, e := range resolveErrs {
			e.Pos = bodyPosition(e.Pos)
			mapped[i] = e
		}
		return mapped
	}
	return err
}

// fileOptions enables the language features helper authors expect from a
// general purpose function body.
func fileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		Set:       true,
		While:     true,
		Recursion: true,
	}
}

// compile parses and resolves the file, using the standard modules plus the
// provided globals as predeclared names.
func compile(
	filename string,
	scriptBodyBytes []byte,
	opts *syntax.FileOptions,
	globals starlarkLib.StringDict,
) (*starlarkLib.Program, starlarkLib.StringDict, error) {
	if scriptBodyBytes == nil {
		return nil, nil, ErrContentNil
	}

	if opts == nil {
		opts = &syntax.FileOptions{}
	}

	// Standard modules first, then provided globals, allowing them to override defaults
	predeclared := internal.StarlarkModules()
	for k, v := range globals {
		predeclared[k] = v
	}

	f, err := opts.Parse(filename, scriptBodyBytes, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCompileFailed, bodyError(err))
	}

	prog, err := starlarkLib.FileProgram(f, predeclared.Has)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCompileFailed, bodyError(err))
	}

	return prog, predeclared, nil
}

// CompileFunction compiles the wrapped source and runs its top level once, which only
// defines the entry point. The returned function's globals are frozen, so it can be
// called from several threads at once.
func CompileFunction(
	filename string,
	source string,
	globals starlarkLib.StringDict,
) (*starlarkLib.Function, error) {
	prog, predeclared, err := compile(filename, []byte(source), fileOptions(), globals)
	if err != nil {
		return nil, err
	}

	thread := &starlarkLib.Thread{Name: filename}
	moduleGlobals, err := prog.Init(thread, predeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}
	moduleGlobals.Freeze()

	fn, ok := moduleGlobals[EntryPoint].(*starlarkLib.Function)
	if !ok {
		return nil, ErrNoEntryPoint
	}
	return fn, nil
}
