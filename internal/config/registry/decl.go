package registry

import (
	"errors"
	"fmt"
	"math"

	"github.com/dshills/keyrc/internal/config/loader"
	"github.com/dshills/keyrc/internal/rc"
)

// FromDecls creates a registry holding the settings declared in an
// options file. Every invalid declaration is reported; the valid ones are
// still registered.
func FromDecls(decls []loader.SettingDecl) (*Registry, error) {
	r := New()
	var errs []error
	for _, d := range decls {
		s, err := declSetting(d)
		if err == nil {
			err = r.Register(s)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("setting %s: %w", d.Name, err))
		}
	}
	return r, errors.Join(errs...)
}

func declSetting(d loader.SettingDecl) (Setting, error) {
	kind, err := ParseKind(d.Type)
	if err != nil {
		return Setting{}, err
	}
	def, err := declValue(kind, d.Default)
	if err != nil {
		return Setting{}, err
	}
	return Setting{
		Name:        d.Name,
		Kind:        kind,
		Default:     def,
		Description: d.Description,
		Choices:     d.Choices,
		Minimum:     d.Min,
		Maximum:     d.Max,
	}, nil
}

// declValue converts a decoded TOML or YAML default to a Value of kind.
// Numbers are converted between integer and float when no precision is
// lost, so "default = 1" declares a float setting's default as 1.0.
func declValue(kind rc.Kind, v any) (rc.Value, error) {
	var val rc.Value
	switch v := v.(type) {
	case nil:
		return rc.Value{}, nil
	case bool:
		val = rc.BoolValue(v)
	case int:
		val = rc.IntValue(int64(v))
	case int64:
		val = rc.IntValue(v)
	case uint64:
		if v > math.MaxInt64 {
			return rc.Value{}, fmt.Errorf("%w: default %d out of range", ErrInvalidSetting, v)
		}
		val = rc.IntValue(int64(v))
	case float64:
		val = rc.FloatValue(v)
	case string:
		if kind == rc.KindStr {
			return rc.StrValue(v), nil
		}
		val = rc.ParseValue(v)
	default:
		return rc.Value{}, fmt.Errorf("%w: default of type %T", ErrInvalidSetting, v)
	}
	return convertNumber(kind, val), nil
}

// convertNumber returns val as kind when the conversion is exact.
// Other values are returned unchanged for Validate to reject.
func convertNumber(kind rc.Kind, val rc.Value) rc.Value {
	switch {
	case kind == rc.KindFloat && val.Kind == rc.KindInt:
		if f := float64(val.Int); int64(f) == val.Int {
			return rc.FloatValue(f)
		}
	case kind == rc.KindInt && val.Kind == rc.KindFloat:
		f := val.Float
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return rc.IntValue(int64(f))
		}
	}
	return val
}
