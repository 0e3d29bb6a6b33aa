package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// decorations are labels the source pages render inside title cells.
var decorations = []string{
	"상세보기", // "view details" button
	"(선택)",  // "(optional)" marker
}

// NormalizeTitle turns a rendered title into the key used to match the ranking
// and reservation tables. It keeps the first line, removes decorative labels,
// folds compatibility forms (full-width letters, roman numerals) and drops
// everything that is not a letter or digit. Case is preserved.
//
// An empty key never matches anything.
func NormalizeTitle(text string) string {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	text = norm.NFKC.String(text)

	// Stripping can join a decoration back together ("상세 보기") or let
	// neighbouring runes compose, so repeat until nothing changes.
	for {
		next := lettersAndDigits(removeDecorations(text))
		if next == text {
			return next
		}
		text = next
	}
}

func removeDecorations(s string) string {
	for _, d := range decorations {
		s = strings.ReplaceAll(s, d, "")
	}
	return s
}

func lettersAndDigits(s string) string {
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return norm.NFKC.String(b.String())
}

// DisplayTitle is the first rendered line of a title, trimmed. It is what the
// report shows; it is never used for matching.
func DisplayTitle(raw string) string {
	if i := strings.IndexAny(raw, "\r\n"); i >= 0 {
		raw = raw[:i]
	}
	return strings.Join(strings.Fields(raw), " ")
}
