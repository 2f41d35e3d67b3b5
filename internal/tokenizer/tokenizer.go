// Package tokenizer implements the term tokenizer (spec.md §4.C1): a
// Unicode word-break + lowercase + length-filter pass applied identically
// at index time and at query time so term lookups stay byte-exact.
package tokenizer

import (
	"strings"
	"unicode"
)

// Default pre-trim length bounds. A raw word token shorter than MinLen or
// longer than MaxLen runes is dropped before underscore-trimming even
// runs (spec.md §4.C1).
const (
	DefaultMinLen = 1
	DefaultMaxLen = 64
)

// Token is one normalized term together with the byte offset of its first
// rune in the input, used by the build pipeline to bucket hit positions.
type Token struct {
	Text   string
	Offset int
}

// Tokenizer splits UTF-8 byte ranges into normalized terms. The zero value
// is usable and applies DefaultMinLen/DefaultMaxLen.
//
// There is no UAX#29 word-segmentation library in the example pack with a
// stable public word-boundary API we could verify without fetching it
// (rivo/uniseg, pulled in transitively here, exposes grapheme clustering,
// not word boundaries) — see DESIGN.md. This scans Unicode letter/digit/
// mark/underscore runs directly with the standard `unicode` package, which
// is both a very close approximation of UAX#29 "word" runs for the
// Latin-heavy Usenet corpus this targets and, crucially, deterministic and
// reproducible between build time and query time.
type Tokenizer struct {
	MinLen int
	MaxLen int
}

// New returns a Tokenizer with explicit pre-trim length bounds.
func New(minLen, maxLen int) *Tokenizer {
	return &Tokenizer{MinLen: minLen, MaxLen: maxLen}
}

func (t *Tokenizer) bounds() (int, int) {
	minLen, maxLen := t.MinLen, t.MaxLen
	if minLen <= 0 {
		minLen = DefaultMinLen
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return minLen, maxLen
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

// Tokenize scans text for word runs, lowercases each, trims leading and
// trailing underscores, and emits it only if the trimmed length is
// strictly greater than 2 and the pre-trim rune count was within bounds.
func (t *Tokenizer) Tokenize(text []byte) []Token {
	minLen, maxLen := t.bounds()
	var out []Token

	runes := []rune(string(text))
	// byteOffsets[i] is the byte offset of runes[i] in text.
	byteOffsets := make([]int, len(runes)+1)
	{
		off := 0
		for i, r := range runes {
			byteOffsets[i] = off
			off += utf8RuneLen(r)
		}
		byteOffsets[len(runes)] = off
	}

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		raw := runes[start:end]
		defer func() { start = -1 }()
		if len(raw) < minLen || len(raw) > maxLen {
			return
		}
		lower := strings.ToLower(string(raw))
		trimmed := strings.Trim(lower, "_")
		if len([]rune(trimmed)) <= 2 {
			return
		}
		out = append(out, Token{Text: trimmed, Offset: byteOffsets[start]})
	}

	for i, r := range runes {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(runes))

	return out
}

func utf8RuneLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
