package rc

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"123", IntValue(123)},
		{"0", IntValue(0)},
		{"123.4", FloatValue(123.4)},
		{".5", FloatValue(0.5)},
		{"true", BoolValue(true)},
		{"false", BoolValue(false)},
		{"True", StrValue("True")},
		{"12.3.4", StrValue("12.3.4")},
		{"-5", StrValue("-5")},
		{"1e3", StrValue("1e3")},
		{".", StrValue(".")},
		{"99999999999999999999", StrValue("99999999999999999999")},
		{"  padded value  ", StrValue("padded value")},
		{"https://example.com", StrValue("https://example.com")},
	}

	for _, tt := range tests {
		if got := ParseValue(tt.input); got != tt.want {
			t.Errorf("ParseValue(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindBool, "bool"},
		{KindFloat, "float"},
		{KindInt, "integer"},
		{KindStr, "string"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{IntValue(42), "42"},
		{FloatValue(12.345), "12.345"},
		{FloatValue(3), "3.0"},
		{BoolValue(true), "true"},
		{StrValue("with spaces"), "with spaces"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := ParseValue(tt.value.String()); got != tt.value {
			t.Errorf("ParseValue(%q) = %+v, want %+v", tt.value.String(), got, tt.value)
		}
	}
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" 5 # Comment.", " 5 "},
		{"#all comment", ""},
		{" a#b", " a#b"},
		{" a\t#b", " a\t"},
		{" no comment", " no comment"},
	}

	for _, tt := range tests {
		if got := stripComment(tt.input); got != tt.want {
			t.Errorf("stripComment(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
