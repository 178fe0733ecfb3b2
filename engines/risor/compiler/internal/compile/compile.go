package compile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"
)

const (
	// EntryPoint is the name of the function declaration wrapping a helper body.
	EntryPoint = "polyhelper"

	// ArgsGlobal is the global list holding the call arguments at eval time.
	ArgsGlobal = "polyhelper_args"
)

// WrapSource builds a Risor program that declares the helper body as a function
// taking params, then calls it with the elements of ArgsGlobal. The value of the
// program is the helper's return value.
func WrapSource(params []string, body string) string {
	callArgs := make([]string, len(params))
	for i := range params {
		callArgs[i] = fmt.Sprintf("%s[%d]", ArgsGlobal, i)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "func %s(%s) {\n", EntryPoint, strings.Join(params, ", "))
	b.WriteString(body)
	b.WriteString("\n}\n")
	fmt.Fprintf(&b, "%s(%s)\n", EntryPoint, strings.Join(callArgs, ", "))
	return b.String()
}

// locationLine matches the line number in a Risor error location.
var locationLine = regexp.MustCompile(`\bline (\d+), column`)

// bodyMessage renders err, preferring the friendly form that quotes the offending
// line, with line numbers counted from the start of the helper body. Line 1 is
// the function declaration, so it is left as is.
func bodyMessage(err error) string {
	msg := err.Error()
	var friendlyErr risorErrors.FriendlyError
	if errors.As(err, &friendlyErr) {
		msg = friendlyErr.FriendlyErrorMessage()
	}

	return locationLine.ReplaceAllStringFunc(msg, func(match string) string {
		sub := locationLine.FindStringSubmatch(match)
		n, convErr := strconv.Atoi(sub[1])
		if convErr != nil || n <= 1 {
			return match
		}
		return fmt.Sprintf("line %d, column", n-1)
	})
}

// Compile parses and compiles the script content into bytecode
func Compile(scriptContent *string, options ...risorCompiler.Option) (*risorCompiler.Code, error) {
	if scriptContent == nil {
		return nil, ErrContentNil
	}

	ast, err := risorParser.Parse(context.Background(), *scriptContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompileFailed, bodyMessage(err))
	}

	bc, err := risorCompiler.Compile(ast, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompileFailed, bodyMessage(err))
	}

	return bc, nil
}

// CompileWithGlobals compiles the script content with the Risor default globals plus
// the names in globals. Every name the script reads at eval time must be declared
// here, even though the values are only bound when the bytecode runs.
func CompileWithGlobals(scriptContent *string, globals []string) (*risorCompiler.Code, error) {
	cfg := risorLib.NewConfig()
	globalNames := append(cfg.GlobalNames(), globals...)

	options := []risorCompiler.Option{
		risorCompiler.WithGlobalNames(globalNames),
	}

	return Compile(scriptContent, options...)
}
