package key

import "testing"

func TestSequenceHasPrefix(t *testing.T) {
	seq, err := ParseSequence("<C-x><C-s>")
	if err != nil {
		t.Fatalf("ParseSequence error = %v", err)
	}

	tests := []struct {
		prefix string
		want   bool
	}{
		{"<C-x>", true},
		{"<C-x><C-s>", true},
		{"<C-s>", false},
		{"<C-x><C-s>a", false},
	}

	for _, tt := range tests {
		prefix := mustParse(t, tt.prefix)
		if got := seq.HasPrefix(prefix); got != tt.want {
			t.Errorf("HasPrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestSequenceClone(t *testing.T) {
	seq := mustParse(t, "abc")
	clone := seq.Clone()
	clone[0] = Char('z')
	if seq[0] != Char('a') {
		t.Error("Clone should not share storage")
	}
	if Sequence(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestParseSequenceError(t *testing.T) {
	if _, err := ParseSequence("<C-"); err == nil {
		t.Error("ParseSequence should fail on unterminated chord")
	}
}

func mustParse(t *testing.T, spec string) Sequence {
	t.Helper()
	seq, err := ParseSequence(spec)
	if err != nil {
		t.Fatalf("ParseSequence(%q) error = %v", spec, err)
	}
	return seq
}
