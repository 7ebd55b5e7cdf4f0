package rc

import (
	"fmt"
	"strings"
)

// Settings stores typed settings that set commands are applied to.
// V is the setter type returned by ToVariant, typically a name/value pair
// already checked against the setting's declared type.
type Settings[V any] interface {
	// Get returns the current value of name.
	Get(name string) (Value, bool)
	// ToVariant validates value for name and converts it to a setter.
	ToVariant(name string, value Value) (V, error)
	// SetValue stores a validated setter.
	SetValue(v V)
}

// Apply validates cmd against s and stores it.
func Apply[V any](s Settings[V], cmd SetCommand) error {
	v, err := s.ToVariant(cmd.Name, cmd.Value)
	if err != nil {
		return fmt.Errorf("set %s: %w", cmd.Name, err)
	}
	s.SetValue(v)
	return nil
}

// ApplyAll applies every SetCommand of result in order and returns the
// errors of those that were rejected.
func ApplyAll[V any](s Settings[V], result *Result) []error {
	var errs []error
	for _, cmd := range result.Commands {
		set, ok := cmd.(SetCommand)
		if !ok {
			continue
		}
		if err := Apply(s, set); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// UnknownChoiceError is a value outside a setting's declared choices.
type UnknownChoiceError struct {
	Actual   string
	Expected []string
}

// Error implements the error interface.
func (e *UnknownChoiceError) Error() string {
	return fmt.Sprintf("unknown choice %s, expecting one of: %s", e.Actual, strings.Join(e.Expected, ", "))
}

// UnknownSettingError is a set command naming no known setting.
type UnknownSettingError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownSettingError) Error() string {
	return "no setting named " + e.Name
}

// WrongTypeError is a value whose kind does not match the setting's type.
type WrongTypeError struct {
	Actual   Kind
	Expected Kind
}

// Error implements the error interface.
func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("wrong value type: expecting %s, but found %s", e.Expected, e.Actual)
}
