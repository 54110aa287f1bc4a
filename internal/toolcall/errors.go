// internal/toolcall/errors.go
package toolcall

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when there is nothing to decode.
	ErrEmptyInput = errors.New("empty tool call payload")
	// ErrMalformedJSON is returned when a span is not valid JSON, even after repair.
	ErrMalformedJSON = errors.New("malformed tool call json")
	// ErrNotObject is returned when the payload is not an object (or an array holding one).
	ErrNotObject = errors.New("tool call payload is not an object")
	// ErrMissingName is returned when neither "tool" nor "name" holds a string.
	ErrMissingName = errors.New("tool call has no name")
	// ErrUnknownTool is returned when the name is not in the registry.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArguments is returned when params fail the tool's schema.
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

// UnknownToolError carries the rejected name and the closest registered names.
type UnknownToolError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownToolError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown tool %q", e.Name)
	}
	return fmt.Sprintf("unknown tool %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// ArgumentsError lists the schema violations of a call's params.
type ArgumentsError struct {
	Tool    string
	Details []string
}

func (e *ArgumentsError) Error() string {
	return fmt.Sprintf("arguments for %s failed validation: %s", e.Tool, strings.Join(e.Details, "; "))
}

func (e *ArgumentsError) Unwrap() error { return ErrInvalidArguments }
