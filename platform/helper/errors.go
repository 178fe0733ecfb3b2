package helper

import (
	"errors"
	"fmt"
)

var ErrHelperNotFound = errors.New("helper not found")

// CompileError records a definition whose body was rejected by the engine.
type CompileError struct {
	ID      any    `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`

	// Err is the underlying compiler error, kept for errors.Is / errors.As.
	Err error `json:"-"`
}

func (e CompileError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("helper %q: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("helper %q (%v): %s", e.Name, e.ID, e.Message)
}

func (e CompileError) Unwrap() error {
	return e.Err
}

// NewCompileError builds a CompileError for the definition from err.
func NewCompileError(def Definition, err error) CompileError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return CompileError{
		ID:      def.ID,
		Name:    def.TrimmedName(),
		Message: msg,
		Err:     err,
	}
}
