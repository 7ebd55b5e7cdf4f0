package rc

import (
	"errors"
	"strings"
	"testing"
)

type setter struct {
	name  string
	value Value
}

// fakeSettings declares "size" as an integer and "mode" as a choice.
type fakeSettings struct {
	values map[string]Value
}

func (s *fakeSettings) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

func (s *fakeSettings) ToVariant(name string, value Value) (setter, error) {
	switch name {
	case "size":
		if value.Kind != KindInt {
			return setter{}, &WrongTypeError{Actual: value.Kind, Expected: KindInt}
		}
	case "mode":
		if value.Str != "light" && value.Str != "dark" {
			return setter{}, &UnknownChoiceError{Actual: value.String(), Expected: []string{"light", "dark"}}
		}
	default:
		return setter{}, &UnknownSettingError{Name: name}
	}
	return setter{name, value}, nil
}

func (s *fakeSettings) SetValue(v setter) {
	s.values[v.name] = v.value
}

func TestApply(t *testing.T) {
	s := &fakeSettings{values: map[string]Value{}}

	if err := Apply[setter](s, SetCommand{"size", IntValue(3)}); err != nil {
		t.Fatalf("Apply error = %v", err)
	}
	if v, ok := s.Get("size"); !ok || v != IntValue(3) {
		t.Errorf("Get(size) = %v, %v", v, ok)
	}

	tests := []struct {
		cmd     SetCommand
		want    string
		wantErr any
	}{
		{SetCommand{"size", StrValue("big")}, "set size: wrong value type: expecting integer, but found string", new(*WrongTypeError)},
		{SetCommand{"mode", StrValue("dim")}, "set mode: unknown choice dim, expecting one of: light, dark", new(*UnknownChoiceError)},
		{SetCommand{"color", BoolValue(true)}, "set color: no setting named color", new(*UnknownSettingError)},
	}

	for _, tt := range tests {
		err := Apply[setter](s, tt.cmd)
		if err == nil {
			t.Errorf("Apply(%v) should fail", tt.cmd)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("Apply(%v) = %q, want %q", tt.cmd, err.Error(), tt.want)
		}
		if !errors.As(err, tt.wantErr) {
			t.Errorf("Apply(%v) error type = %T", tt.cmd, err)
		}
	}
}

func TestApplyAll(t *testing.T) {
	s := &fakeSettings{values: map[string]Value{}}
	p := NewWithConfig[testCommand](testFactory{}, testConfig())
	result := p.Parse(strings.NewReader("set size = 4\nnmap o :open\nset mode = dim\nset mode = dark"))

	errs := ApplyAll[setter](s, result)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if v, _ := s.Get("mode"); v != StrValue("dark") {
		t.Errorf("mode = %v, want dark", v)
	}
	if v, _ := s.Get("size"); v != IntValue(4) {
		t.Errorf("size = %v, want 4", v)
	}
}
