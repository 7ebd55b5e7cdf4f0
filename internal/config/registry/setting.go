// Package registry provides the typed settings store that parsed set
// commands are applied to.
//
// The registry holds the declaration of every known setting, with its
// kind, default, allowed choices and numeric range, plus the values set so
// far. It implements rc.Settings, so rc.Apply and rc.ApplyAll can feed
// SetCommands into it directly.
package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/keyrc/internal/rc"
)

// Setting defines a setting with its metadata.
type Setting struct {
	// Name is the dash-cased name used by set commands (e.g., "scroll-step").
	Name string

	// Kind is the value type set commands must supply.
	Kind rc.Kind

	// Default is the value reported until a set command overrides it.
	Default rc.Value

	// Description is human-readable documentation.
	Description string

	// Choices lists the allowed values of a string setting.
	Choices []string

	// Minimum for numeric kinds (nil means no minimum).
	Minimum *float64

	// Maximum for numeric kinds (nil means no maximum).
	Maximum *float64

	// Deprecated marks settings that should be migrated.
	Deprecated bool
	ReplacedBy string

	// Tags for filtering/grouping settings.
	Tags []string
}

// Validate checks if a value is valid for this setting.
func (s *Setting) Validate(value rc.Value) error {
	if value.Kind != s.Kind {
		return &rc.WrongTypeError{Actual: value.Kind, Expected: s.Kind}
	}

	if len(s.Choices) > 0 && !slices.Contains(s.Choices, value.Str) {
		return &rc.UnknownChoiceError{Actual: value.Str, Expected: slices.Clone(s.Choices)}
	}

	if s.Kind == rc.KindInt || s.Kind == rc.KindFloat {
		return s.validateRange(value)
	}
	return nil
}

// validateRange checks if a numeric value is within the allowed range.
func (s *Setting) validateRange(value rc.Value) error {
	f := value.Float
	if value.Kind == rc.KindInt {
		f = float64(value.Int)
	}

	if s.Minimum != nil && f < *s.Minimum {
		return fmt.Errorf("%w: %s is less than minimum %v", ErrOutOfRange, value, *s.Minimum)
	}
	if s.Maximum != nil && f > *s.Maximum {
		return fmt.Errorf("%w: %s is greater than maximum %v", ErrOutOfRange, value, *s.Maximum)
	}
	return nil
}

// normalize fills in a default of the declared kind and checks it.
func (s *Setting) normalize() error {
	if s.Default == (rc.Value{}) {
		s.Default = rc.Value{Kind: s.Kind}
		if len(s.Choices) > 0 {
			s.Default.Str = s.Choices[0]
		}
	}
	if err := s.Validate(s.Default); err != nil {
		return fmt.Errorf("%w: default of %s: %w", ErrInvalidSetting, s.Name, err)
	}
	return nil
}

// ParseKind converts a declared type name to a Kind. It accepts the names
// Kind.String produces plus the short forms "int" and "str".
func ParseKind(name string) (rc.Kind, error) {
	switch strings.ToLower(name) {
	case "bool", "boolean":
		return rc.KindBool, nil
	case "float", "number":
		return rc.KindFloat, nil
	case "integer", "int":
		return rc.KindInt, nil
	case "string", "str", "":
		return rc.KindStr, nil
	default:
		return rc.KindStr, fmt.Errorf("%w: unknown type %q", ErrInvalidSetting, name)
	}
}

// MinValue creates a pointer to a float64 for use as Minimum.
func MinValue(v float64) *float64 {
	return &v
}

// MaxValue creates a pointer to a float64 for use as Maximum.
func MaxValue(v float64) *float64 {
	return &v
}
