package lexicon

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
)

// FuzzyIndex is the read-only view over the per-term neighbor lists
// produced by the fuzzy neighborhood builder (spec.md §4.C7, §6
// lexdist/lexdistmeta).
type FuzzyIndex struct {
	meta *mappedFile // lexdistmeta: u32 offset per term, 0 = none
	data *mappedFile // lexdist: u32 count, u32[count] words
}

// OpenFuzzy memory-maps the fuzzy-neighbor satellite files. A missing file
// is returned as an error wrapping os.ErrNotExist; callers implement the
// MissingFuzzyData flag fixup (spec.md §7) by treating a failed open as
// "no fuzzy index" and passing a nil *FuzzyIndex on.
func OpenFuzzy(dir string) (*FuzzyIndex, error) {
	meta, err := openMapped(filepath.Join(dir, FileDistMeta))
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", FileDistMeta, err)
	}
	data, err := openMapped(filepath.Join(dir, FileDist))
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", FileDist, err)
	}
	return &FuzzyIndex{meta: meta, data: data}, nil
}

func (f *FuzzyIndex) Close() error {
	var err error
	if cerr := f.meta.Close(); cerr != nil {
		err = cerr
	}
	if cerr := f.data.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Neighbors returns the decoded fuzzy-neighbor list for termID, or nil if
// the term has none.
func (f *FuzzyIndex) Neighbors(termID uint32) ([]FuzzyNeighbor, error) {
	if uint64(termID)*4+4 > uint64(f.meta.Len()) {
		return nil, fmt.Errorf("lexicon: term id %d out of range for %s", termID, FileDistMeta)
	}
	ob, err := f.meta.slice(uint64(termID)*4, 4)
	if err != nil {
		return nil, err
	}
	offset := binary.LittleEndian.Uint32(ob)
	if offset == 0 {
		return nil, nil
	}
	cb, err := f.data.slice(uint64(offset), 4)
	if err != nil {
		return nil, err
	}
	count := binary.LittleEndian.Uint32(cb)
	words, err := f.data.slice(uint64(offset)+4, uint64(count)*4)
	if err != nil {
		return nil, err
	}
	out := make([]FuzzyNeighbor, count)
	for i := uint32(0); i < count; i++ {
		w := binary.LittleEndian.Uint32(words[i*4 : i*4+4])
		out[i] = UnpackFuzzyNeighbor(w)
	}
	return out, nil
}
