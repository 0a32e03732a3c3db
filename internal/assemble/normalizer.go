package assemble

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalizer cleans individual recognized fragments before assembly.
// Normalization is pure and never fails: whitespace is collapsed and a
// fixed table of character confusions is corrected, but only inside
// identifier-like tokens where the fix is unambiguous. Ordinary words
// pass through untouched.
type Normalizer struct{}

// NewNormalizer creates a fragment normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	tokenRe      = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9-]*`)
)

// confusables maps letters a recognizer commonly misreads for digits.
// A replacement is applied only when the letter sits between two digits
// inside an identifier-like token.
var confusables = map[rune]rune{
	'O': '0',
	'o': '0',
	'I': '1',
	'l': '1',
	'S': '5',
	'B': '8',
	'Z': '2',
}

// Normalize returns the cleaned fragment text.
func (n *Normalizer) Normalize(raw string) string {
	s := strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
	if s == "" {
		return s
	}
	return tokenRe.ReplaceAllStringFunc(s, fixToken)
}

// fixToken corrects digit-confusable letters strictly surrounded by
// digits. Tokens without at least two digits are never identifiers in
// this domain (model variants, serial numbers, mod and SB codes all
// carry digit runs) and are left alone.
func fixToken(tok string) string {
	digits := 0
	for _, r := range tok {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 2 {
		return tok
	}

	rs := []rune(tok)
	changed := false
	for i := 1; i < len(rs)-1; i++ {
		repl, ok := confusables[rs[i]]
		if !ok {
			continue
		}
		if unicode.IsDigit(rs[i-1]) && unicode.IsDigit(rs[i+1]) {
			rs[i] = repl
			changed = true
		}
	}
	if !changed {
		return tok
	}
	return string(rs)
}
