package rc

import (
	"errors"
	"fmt"
)

// Errors wrapped by *Error values.
var (
	// ErrIncludeCycle indicates a file that includes itself, directly or not.
	ErrIncludeCycle = errors.New("include cycle")

	// ErrIncludeDepthExceeded indicates too many nested include commands.
	ErrIncludeDepthExceeded = errors.New("include depth exceeded")
)

// MaxIncludeDepth is the deepest include nesting accepted.
const MaxIncludeDepth = 16

// Token descriptions used in diagnostics.
const (
	tokenEndOfLine = "<end of line>"

	expectArguments     = "command arguments"
	expectCommand       = "command"
	expectCommandOrNote = "command or comment"
	expectEndOfLine     = tokenEndOfLine
	expectEquals        = "="
	expectIdentifier    = "identifier"
	expectAction        = "mapping action"
	expectNonRecursive  = "non-recursive include"
	expectValue         = "value"

	unexpectedNothing = "comment or " + tokenEndOfLine
)

// ErrorType classifies an *Error.
type ErrorType uint8

const (
	// Parse is a syntax error.
	Parse ErrorType = iota
	// MissingArgument is a keyword or command lacking its argument.
	MissingArgument
	// NoCommand is a blank or comment line given to ParseLine.
	NoCommand
	// UnknownCommand is a word that is neither a keyword nor a known command.
	UnknownCommand
	// Include is an include file that could not be read.
	Include
	// IncludeCycle is an include that re-enters a file being parsed or
	// nests too deeply.
	IncludeCycle
)

// String returns the name of the error type.
func (t ErrorType) String() string {
	switch t {
	case Parse:
		return "parse"
	case MissingArgument:
		return "missing argument"
	case NoCommand:
		return "no command"
	case UnknownCommand:
		return "unknown command"
	case Include:
		return "include"
	case IncludeCycle:
		return "include cycle"
	default:
		return "unknown"
	}
}

// Error is a diagnostic attached to a position.
type Error struct {
	// Type classifies the error.
	Type ErrorType
	// Pos is where the offending text starts.
	Pos Position
	// Unexpected is the text found.
	Unexpected string
	// Expected describes what was expected.
	Expected string
	// File is the included file the error comes from. It is empty for
	// errors in the input given to the parser.
	File string
	// Err is the underlying error, if any.
	Err error
}

func newError(typ ErrorType, pos Position, unexpected, expected string) *Error {
	return &Error{Type: typ, Pos: pos, Unexpected: unexpected, Expected: expected}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Type == Include && e.Err != nil {
		return fmt.Sprintf("%v on %s", e.Err, e.Pos)
	}
	return fmt.Sprintf("unexpected %s, expecting %s on %s", e.Unexpected, e.Expected, e.Pos)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Location renders the error prefixed with the file it comes from, when
// it comes from an included file.
func (e *Error) Location() string {
	if e.File == "" {
		return e.Error()
	}
	return e.File + ": " + e.Error()
}
