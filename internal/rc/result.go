package rc

import "errors"

// Result collects the commands and errors of a parse, in input order.
type Result struct {
	Commands []Command
	Errors   []*Error

	// Files lists the absolute paths of the files parsed, the root file
	// first and then each include in the order it was read.
	Files []string
}

// add appends a command.
func (r *Result) add(cmd Command) {
	r.Commands = append(r.Commands, cmd)
}

// fail appends an error.
func (r *Result) fail(err *Error) {
	r.Errors = append(r.Errors, err)
}

// Merge appends the commands and errors of other to r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Commands = append(r.Commands, other.Commands...)
	r.Errors = append(r.Errors, other.Errors...)
	r.Files = append(r.Files, other.Files...)
}

// Empty reports whether r holds neither commands nor errors.
func (r *Result) Empty() bool {
	return len(r.Commands) == 0 && len(r.Errors) == 0
}

// HasErrors reports whether any line failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err joins all errors, or returns nil when there are none.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}
