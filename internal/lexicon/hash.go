package lexicon

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// ErrNotFound is returned by HashIndex.Search when a term string has no
// entry in the hash table (spec.md §7 "NotFound").
var ErrNotFound = errors.New("lexicon: term not found")

// HashKey is the fast non-cryptographic 32-bit hash used to place term
// strings into hash slots (spec.md §4.C6). We take the low 32 bits of
// xxHash64; internal/build's BuildHash calls this same function, so the
// writer and the reader agree on every term's slot.
func HashKey(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// HashIndex is the read-only open-addressed string->term_id hash described
// in spec.md §4.C6 and §6 (lexhash / lexhashdata).
type HashIndex struct {
	offsets *mappedFile // lexhash: u32 per slot
	data    *mappedFile // lexhashdata: u32 count, {u32 str, u32 id}[count] per bucket
	mask    uint32
	size    uint32
	str     *Lexicon
}

// OpenHash memory-maps the hash-index satellite files. It returns
// ErrNotFound-free nil,nil semantics are not used here: a missing hash
// index is a hard error for the caller, who should fall back to
// MissingFuzzyData-style flag fixup only for the *fuzzy* files, not the
// hash (a lexicon without its hash index cannot resolve any term).
func OpenHash(dir string, lex *Lexicon) (*HashIndex, error) {
	offsets, err := openMapped(filepath.Join(dir, FileHash))
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", FileHash, err)
	}
	data, err := openMapped(filepath.Join(dir, FileHashData))
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", FileHashData, err)
	}
	size := uint32(offsets.Len() / 4)
	if size == 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("lexicon: %s slot count %d is not a power of two", FileHash, size)
	}
	return &HashIndex{offsets: offsets, data: data, mask: size - 1, size: size, str: lex}, nil
}

func (h *HashIndex) Close() error {
	var err error
	if cerr := h.offsets.Close(); cerr != nil {
		err = cerr
	}
	if cerr := h.data.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Size returns the number of slots in the table.
func (h *HashIndex) Size() uint32 { return h.size }

func (h *HashIndex) slotOffset(slot uint32) (uint32, error) {
	b, err := h.offsets.slice(uint64(slot)*4, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Search looks up str and returns its term id, or ErrNotFound.
func (h *HashIndex) Search(str string) (uint32, error) {
	slot := HashKey(str) & h.mask
	offset, err := h.slotOffset(slot)
	if err != nil {
		return 0, err
	}
	if offset == 0 {
		return 0, ErrNotFound
	}
	countBuf, err := h.data.slice(uint64(offset), 4)
	if err != nil {
		return 0, err
	}
	count := binary.LittleEndian.Uint32(countBuf)
	pairs, err := h.data.slice(uint64(offset)+4, uint64(count)*hashPairSize)
	if err != nil {
		return 0, err
	}
	for i := uint32(0); i < count; i++ {
		b := pairs[i*hashPairSize : i*hashPairSize+hashPairSize]
		pairStr := binary.LittleEndian.Uint32(b[0:4])
		pairID := binary.LittleEndian.Uint32(b[4:8])
		candidate, err := h.str.String(pairStr)
		if err != nil {
			return 0, err
		}
		if candidate == str {
			return pairID, nil
		}
	}
	return 0, ErrNotFound
}
