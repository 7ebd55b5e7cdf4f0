package key

import "strings"

// Sequence represents the keys of one mapping in the order they are typed.
// Examples: "gg", "<C-x><C-s>", "<C-O>o"
type Sequence []Key

// ParseSequence parses a chord word into a Sequence.
func ParseSequence(s string) (Sequence, error) {
	keys, err := ParseKeys(s)
	if err != nil {
		return nil, err
	}
	return Sequence(keys), nil
}

// String renders the sequence back to chord syntax.
func (s Sequence) String() string {
	var sb strings.Builder
	for _, k := range s {
		sb.WriteString(k.String())
	}
	return sb.String()
}

// Equals returns true if two sequences are identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, k := range s {
		if k != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	return prefix.Equals(s[:len(prefix)])
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	keys := make(Sequence, len(s))
	copy(keys, s)
	return keys
}
