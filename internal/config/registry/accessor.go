package registry

import (
	"github.com/dshills/keyrc/internal/rc"
)

// String returns the current value of a string setting.
func (r *Registry) String(name string) (string, error) {
	v, err := r.typed(name, rc.KindStr)
	return v.Str, err
}

// Bool returns the current value of a boolean setting.
func (r *Registry) Bool(name string) (bool, error) {
	v, err := r.typed(name, rc.KindBool)
	return v.Bool, err
}

// Int returns the current value of an integer setting.
func (r *Registry) Int(name string) (int64, error) {
	v, err := r.typed(name, rc.KindInt)
	return v.Int, err
}

// Float returns the current value of a float setting.
func (r *Registry) Float(name string) (float64, error) {
	v, err := r.typed(name, rc.KindFloat)
	return v.Float, err
}

func (r *Registry) typed(name string, kind rc.Kind) (rc.Value, error) {
	v, ok := r.Get(name)
	if !ok {
		return rc.Value{}, &rc.UnknownSettingError{Name: name}
	}
	if v.Kind != kind {
		return rc.Value{}, &rc.WrongTypeError{Actual: v.Kind, Expected: kind}
	}
	return v, nil
}
