// Package commands provides a declarative table of custom commands that
// satisfies the rc.CommandFactory and rc.MetaDataProvider contracts.
package commands

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToDashName converts a Go-style name to the dash-cased form used in
// config files: "WinOpen" becomes "win-open" and "HTTPGet" "http-get".
func ToDashName(name string) string {
	runes := []rune(name)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('-')
			}
		}
		if r == '_' {
			r = '-'
		}
		sb.WriteRune(r)
	}
	return cases.Lower(language.Und).String(sb.String())
}
