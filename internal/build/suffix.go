package build

import (
	"bytes"
	"sort"
)

// BuildStrings implements the suffix-sharing string optimizer (spec.md
// §4.C4): it packs terms into a single NUL-terminated blob, storing only
// one physical copy of each string whose bytes already occur as a suffix
// of a longer already-emitted string.
//
// Offset 0 of the returned blob is reserved (a single padding NUL byte) so
// that no real term's offset is ever 0 — letting a zero-valued TermMeta
// unambiguously mean "uninitialized" rather than colliding with a
// legitimately-placed first string (spec.md §4.C3).
//
// terms must already be de-duplicated (Accumulator.Terms guarantees this).
// The returned offsets slice is indexed the same way as terms.
func BuildStrings(terms []string) (blob []byte, offsets []uint32) {
	n := len(terms)
	offsets = make([]uint32, n)
	if n == 0 {
		return []byte{0}, offsets
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(terms[order[i]]) > len(terms[order[j]])
	})

	blob = []byte{0}
	var ends []uint32 // offsets of NUL terminators of fully emitted strings
	limit := 0        // candidates are ends[:limit]
	prevLen := -1

	for _, idx := range order {
		s := terms[idx]
		l := len(s)
		if prevLen != -1 && l < prevLen {
			limit = len(ends)
		}
		prevLen = l

		matched := false
		for _, e := range ends[:limit] {
			start := int(e) - l
			if start < 0 {
				continue
			}
			if bytes.Equal(blob[start:int(e)], []byte(s)) {
				offsets[idx] = uint32(start)
				matched = true
				break
			}
		}
		if !matched {
			offsets[idx] = uint32(len(blob))
			blob = append(blob, s...)
			blob = append(blob, 0)
			ends = append(ends, uint32(len(blob)-1))
		}
	}

	return blob, offsets
}
