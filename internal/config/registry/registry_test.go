package registry

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/keyrc/internal/config/loader"
	"github.com/dshills/keyrc/internal/rc"
)

func appSettings() *Registry {
	r := New()
	r.MustRegister(Setting{Name: "boolean", Kind: rc.KindBool})
	r.MustRegister(Setting{Name: "cookie-accept", Choices: []string{"always", "never"}, Tags: []string{"privacy"}})
	r.MustRegister(Setting{Name: "float", Kind: rc.KindFloat, Default: rc.FloatValue(1.5)})
	r.MustRegister(Setting{Name: "integer", Kind: rc.KindInt, Minimum: MinValue(0), Maximum: MaxValue(10)})
	r.MustRegister(Setting{Name: "string", Description: "Free text", Deprecated: true, ReplacedBy: "text"})
	return r
}

func TestRegistry_Register(t *testing.T) {
	r := New()

	if err := r.Register(Setting{Name: "tab-size", Kind: rc.KindInt, Default: rc.IntValue(4)}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := r.Register(Setting{Name: "tab-size", Kind: rc.KindInt})
	if !errors.Is(err, ErrSettingAlreadyRegistered) {
		t.Errorf("duplicate error = %v", err)
	}

	tests := []Setting{
		{Kind: rc.KindInt},
		{Name: "bad-default", Kind: rc.KindInt, Default: rc.StrValue("x")},
		{Name: "bad-choice", Choices: []string{"a"}, Default: rc.StrValue("b")},
		{Name: "bad-range", Kind: rc.KindInt, Minimum: MinValue(1)},
	}
	for _, s := range tests {
		if err := r.Register(s); !errors.Is(err, ErrInvalidSetting) {
			t.Errorf("Register(%q) error = %v, want ErrInvalidSetting", s.Name, err)
		}
	}
}

func TestRegistry_MustRegister_Panics(t *testing.T) {
	r := New()
	r.MustRegister(Setting{Name: "test"})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate MustRegister")
		}
	}()
	r.MustRegister(Setting{Name: "test"})
}

func TestRegistry_Defaults(t *testing.T) {
	r := appSettings()

	want := map[string]rc.Value{
		"boolean":       rc.BoolValue(false),
		"cookie-accept": rc.StrValue("always"),
		"float":         rc.FloatValue(1.5),
		"integer":       rc.IntValue(0),
		"string":        rc.StrValue(""),
	}
	if got := r.Defaults(); !reflect.DeepEqual(got, want) {
		t.Errorf("Defaults() = %v, want %v", got, want)
	}
}

func TestRegistry_ApplySet(t *testing.T) {
	p := rc.New[struct{}](nil)
	result := p.Parse(strings.NewReader(`set boolean = true
set cookie-accept = never
set float = 3.14
set integer = 7
set string = hello world`))
	if result.HasErrors() {
		t.Fatalf("parse errors: %v", result.Err())
	}

	r := appSettings()
	if errs := r.Apply(result); len(errs) != 0 {
		t.Fatalf("Apply errors: %v", errs)
	}

	if b, _ := r.Bool("boolean"); !b {
		t.Error("boolean should be true")
	}
	if s, _ := r.String("cookie-accept"); s != "never" {
		t.Errorf("cookie-accept = %q", s)
	}
	if f, _ := r.Float("float"); f != 3.14 {
		t.Errorf("float = %v", f)
	}
	if i, _ := r.Int("integer"); i != 7 {
		t.Errorf("integer = %v", i)
	}
	if s, _ := r.String("string"); s != "hello world" {
		t.Errorf("string = %q", s)
	}
}

func TestRegistry_SettingErrors(t *testing.T) {
	r := appSettings()

	tests := []struct {
		name  string
		value rc.Value
		want  string
	}{
		{"cookie-accept", rc.StrValue("sometimes"), "set cookie-accept: unknown choice sometimes, expecting one of: always, never"},
		{"boolean", rc.IntValue(1), "set boolean: wrong value type: expecting bool, but found integer"},
		{"float", rc.IntValue(2), "set float: wrong value type: expecting float, but found integer"},
		{"integer", rc.StrValue("ten"), "set integer: wrong value type: expecting integer, but found string"},
		{"missing", rc.BoolValue(true), "set missing: no setting named missing"},
		{"integer", rc.IntValue(11), "set integer: value out of range: 11 is greater than maximum 10"},
	}

	for _, tt := range tests {
		err := r.Set(tt.name, tt.value)
		if err == nil || err.Error() != tt.want {
			t.Errorf("Set(%s, %v) error = %v, want %q", tt.name, tt.value, err, tt.want)
		}
	}

	var choice *rc.UnknownChoiceError
	if err := r.Set("cookie-accept", rc.StrValue("x")); !errors.As(err, &choice) {
		t.Errorf("error should be *rc.UnknownChoiceError, got %T", err)
	}
	var unknown *rc.UnknownSettingError
	if err := r.Set("nope", rc.StrValue("x")); !errors.As(err, &unknown) || unknown.Name != "nope" {
		t.Errorf("error should be *rc.UnknownSettingError, got %v", err)
	}
	if len(r.Values()) != 0 {
		t.Errorf("rejected values must not be stored: %v", r.Values())
	}
}

func TestRegistry_ResetAndValues(t *testing.T) {
	r := appSettings()
	if err := r.Set("integer", rc.IntValue(3)); err != nil {
		t.Fatal(err)
	}

	if got := r.Values(); !reflect.DeepEqual(got, map[string]rc.Value{"integer": rc.IntValue(3)}) {
		t.Errorf("Values() = %v", got)
	}

	r.Reset("integer")
	if v, ok := r.Get("integer"); !ok || v != rc.IntValue(0) {
		t.Errorf("Get after Reset = %v, %v", v, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestRegistry_OnChange(t *testing.T) {
	r := appSettings()
	var seen []Setter
	r.OnChange(func(s Setter) { seen = append(seen, s) })

	_ = r.Set("boolean", rc.BoolValue(true))
	_ = r.Set("boolean", rc.StrValue("yes"))

	want := []Setter{{Name: "boolean", Value: rc.BoolValue(true)}}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("observed %v, want %v", seen, want)
	}
}

func TestRegistry_Queries(t *testing.T) {
	r := appSettings()

	names := func(settings []Setting) []string {
		var out []string
		for _, s := range settings {
			out = append(out, s.Name)
		}
		return out
	}

	if got := names(r.All()); !reflect.DeepEqual(got, []string{"boolean", "cookie-accept", "float", "integer", "string"}) {
		t.Errorf("All() = %v", got)
	}
	if got := names(r.Search("free")); !reflect.DeepEqual(got, []string{"string"}) {
		t.Errorf("Search(free) = %v", got)
	}
	if got := names(r.ByTag("privacy")); !reflect.DeepEqual(got, []string{"cookie-accept"}) {
		t.Errorf("ByTag(privacy) = %v", got)
	}
	if got := names(r.Deprecated()); !reflect.DeepEqual(got, []string{"string"}) {
		t.Errorf("Deprecated() = %v", got)
	}
	if s, ok := r.Lookup("string"); !ok || s.ReplacedBy != "text" {
		t.Errorf("Lookup(string) = %+v, %v", s, ok)
	}
	if !r.Has("float") || r.Has("double") {
		t.Error("Has reported the wrong result")
	}
}

func TestRegistry_TypedGetters(t *testing.T) {
	r := appSettings()

	if _, err := r.Int("boolean"); err == nil {
		t.Error("Int(boolean) should fail")
	}
	var unknown *rc.UnknownSettingError
	if _, err := r.Bool("missing"); !errors.As(err, &unknown) {
		t.Errorf("Bool(missing) error = %v", err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want rc.Kind
	}{
		{"bool", rc.KindBool},
		{"Boolean", rc.KindBool},
		{"float", rc.KindFloat},
		{"integer", rc.KindInt},
		{"int", rc.KindInt},
		{"", rc.KindStr},
		{"string", rc.KindStr},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", tt.name, got, err, tt.want)
		}
	}
	if _, err := ParseKind("duration"); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("ParseKind(duration) error = %v", err)
	}
}

func TestFromDecls(t *testing.T) {
	decls := []loader.SettingDecl{
		{Name: "scroll-step", Type: "integer", Default: int64(3), Min: MinValue(1)},
		{Name: "ratio", Type: "float", Default: "0.5"},
		{Name: "theme", Choices: []string{"dark", "light"}, Default: "light"},
		{Name: "broken", Type: "integer", Default: "many"},
		{Name: "odd", Type: "list"},
	}

	r, err := FromDecls(decls)
	if err == nil {
		t.Fatal("FromDecls should report the invalid declarations")
	}
	if !strings.Contains(err.Error(), "setting broken") || !strings.Contains(err.Error(), "setting odd") {
		t.Errorf("error = %v", err)
	}

	if v, _ := r.Get("scroll-step"); v != rc.IntValue(3) {
		t.Errorf("scroll-step = %v", v)
	}
	if v, _ := r.Get("ratio"); v != rc.FloatValue(0.5) {
		t.Errorf("ratio = %v", v)
	}
	if v, _ := r.Get("theme"); v != rc.StrValue("light") {
		t.Errorf("theme = %v", v)
	}
	if r.Has("broken") || r.Has("odd") {
		t.Error("invalid declarations must not be registered")
	}
}

func TestFromDeclsNumberDefaults(t *testing.T) {
	tests := []struct {
		name    string
		decl    loader.SettingDecl
		want    rc.Value
		wantErr string
	}{
		{"int for float", loader.SettingDecl{Type: "float", Default: int64(1)}, rc.FloatValue(1), ""},
		{"yaml int for float", loader.SettingDecl{Type: "float", Default: 3}, rc.FloatValue(3), ""},
		{"int text for float", loader.SettingDecl{Type: "float", Default: "2"}, rc.FloatValue(2), ""},
		{"integral float for int", loader.SettingDecl{Type: "integer", Default: float64(4)}, rc.IntValue(4), ""},
		{"uint for int", loader.SettingDecl{Type: "integer", Default: uint64(7)}, rc.IntValue(7), ""},
		{"fractional float for int", loader.SettingDecl{Type: "integer", Default: 4.5}, rc.Value{}, "setting n"},
		{"uint overflow", loader.SettingDecl{Type: "integer", Default: uint64(math.MaxUint64)}, rc.Value{}, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.decl.Name = "n"
			r, err := FromDecls([]loader.SettingDecl{tt.decl})
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("FromDecls error = %v, want %q", err, tt.wantErr)
				}
				if r.Has("n") {
					t.Error("invalid declaration must not be registered")
				}
				return
			}
			if err != nil {
				t.Fatalf("FromDecls failed: %v", err)
			}
			if v, _ := r.Get("n"); v != tt.want {
				t.Errorf("default = %#v, want %#v", v, tt.want)
			}
		})
	}
}
