package complete

import (
	"strings"
	"unicode"
)

// match reports whether query is a subsequence of name, ignoring case,
// and returns the rune indices of the matched characters.
func match(query, name string) ([]int, bool) {
	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(name))
	if len(q) == 0 || len(t) == 0 {
		return nil, len(q) == 0
	}

	matches := make([]int, 0, len(q))
	qi := 0
	for i := 0; i < len(t) && qi < len(q); i++ {
		if t[i] == q[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(q) {
		return nil, false
	}
	return matches, true
}

// score rates a match of query against name. Consecutive characters,
// word starts and a common prefix raise the score; gaps lower it.
// Every match scores at least 1.
func score(query, name string, matches []int) int {
	if len(matches) == 0 {
		return 0
	}
	runes := []rune(name)

	s := 100
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			s += 20
		}
	}
	for _, idx := range matches {
		if isWordStart(runes, idx) {
			s += 15
		}
	}

	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		s -= gap * 2
	}
	s -= matches[0]

	if n := len(runes); n < 20 {
		s += 20 - n
	}
	if strings.HasPrefix(strings.ToLower(name), strings.ToLower(query)) {
		s += 50
	}
	if strings.EqualFold(name, query) {
		s += 100
	}
	return max(s, 1)
}

// isWordStart reports whether the rune at idx begins a word of a
// dash-cased or snake_cased name.
func isWordStart(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev := runes[idx-1]
	return prev == '-' || prev == '_' || unicode.IsSpace(prev) ||
		(unicode.IsLower(prev) && unicode.IsUpper(runes[idx]))
}
