// Package search implements the online query path: parsing, term
// resolution (with fuzzy expansion), posting-list joining, ranking and
// result assembly (spec.md §4.C8-C12). It is single-threaded per query —
// the only parallel stage in the system is the offline fuzzy-neighborhood
// builder in internal/build.
package search

import "strings"

// ParsedTerm is one whitespace-delimited query token after set-logic,
// header and quoting modifiers have been stripped (spec.md §4.C8).
type ParsedTerm struct {
	Text   string
	Must   bool // '+' prefix
	Cant   bool // '-' prefix
	Header bool // "hdr:" prefix
	Strict bool // quoted or signed: no fuzzy expansion
}

// ParseQuery splits query on whitespace and strips per-token modifiers.
// Set-logic ('+'/'-') is only recognized when flags carries SetLogic;
// "hdr:" and quoting are recognized unconditionally.
func ParseQuery(query string, flags Flags) []ParsedTerm {
	fields := strings.Fields(query)
	terms := make([]ParsedTerm, 0, len(fields))
	for _, tok := range fields {
		var t ParsedTerm
		if flags&SetLogic != 0 && len(tok) > 1 {
			if tok[0] == '+' {
				t.Must = true
				t.Strict = true
				tok = tok[1:]
			} else if tok[0] == '-' {
				t.Cant = true
				t.Strict = true
				tok = tok[1:]
			}
		}
		if strings.HasPrefix(tok, "hdr:") {
			t.Header = true
			tok = tok[len("hdr:"):]
		}
		if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
			tok = tok[1 : len(tok)-1]
			t.Strict = true
		}
		if tok == "" {
			continue
		}
		t.Text = tok
		terms = append(terms, t)
	}
	return terms
}
