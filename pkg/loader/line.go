package loader

import (
	"fmt"
	"strings"
)

// Line is a surviving source line: non-empty after comment stripping.
// Its index in the slice returned by SplitLines is its address.
type Line struct {
	Number int      // 1-based line number in the original text
	Text   string   // raw text of the line, comments included
	Tokens []string // whitespace-separated tokens
}

// String returns a string representation of the Line
func (l Line) String() string {
	return fmt.Sprintf("%d: %s", l.Number, strings.Join(l.Tokens, " "))
}

// is reports whether the line consists of exactly the given tokens
func (l Line) is(tokens ...string) bool {
	if len(l.Tokens) != len(tokens) {
		return false
	}
	for i, t := range tokens {
		if l.Tokens[i] != t {
			return false
		}
	}
	return true
}

// SplitLines strips comments, tokenizes each line and drops lines with no tokens
func SplitLines(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))

	for n, s := range raw {
		code := s
		if i := strings.IndexByte(code, '#'); i >= 0 {
			code = code[:i]
		}

		tokens := strings.FieldsFunc(code, isSpace)
		if len(tokens) == 0 {
			continue
		}

		lines = append(lines, Line{
			Number: n + 1,
			Text:   strings.TrimRight(s, "\r"),
			Tokens: tokens,
		})
	}

	return lines
}

// isSpace matches the token separators: space, tab, CR, VT and FF
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
