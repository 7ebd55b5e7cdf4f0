package rc

import "strings"

type keywordKind uint8

const (
	kwNone keywordKind = iota
	kwInclude
	kwSet
	kwMap
	kwUnmap
)

// keyword is the classification of the first word of a line.
type keyword struct {
	kind keywordKind
	mode string
}

// modeSuffixes is ordered longest first so "nunmap" is read as an unmap
// in mode "n" before it is tried as a map in mode "nun".
var modeSuffixes = [...]struct {
	suffix string
	kind   keywordKind
}{
	{"unmap", kwUnmap},
	{"map", kwMap},
}

// classify reports which keyword, if any, word is.
func classify(word string, modes map[string]struct{}) keyword {
	switch word {
	case "include":
		return keyword{kind: kwInclude}
	case "set":
		return keyword{kind: kwSet}
	}
	for _, s := range modeSuffixes {
		mode, ok := strings.CutSuffix(word, s.suffix)
		if !ok {
			continue
		}
		if _, known := modes[mode]; known {
			return keyword{kind: s.kind, mode: mode}
		}
	}
	return keyword{}
}
