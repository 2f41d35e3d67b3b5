package lexicon

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
)

// File names of the on-disk layout (spec.md §6).
const (
	FileStr      = "lexstr"
	FileMeta     = "lexmeta"
	FileData     = "lexdata"
	FileHit      = "lexhit"
	FileHash     = "lexhash"
	FileHashData = "lexhashdata"
	FileDist     = "lexdist"
	FileDistMeta = "lexdistmeta"
)

// Lexicon is the read-only, memory-mapped view over the four core arrays
// (spec.md §4.C3). The hash index and fuzzy-neighbor files are optional
// satellites opened by OpenHash/OpenFuzzy and layered on top.
type Lexicon struct {
	str  *mappedFile
	meta *mappedFile
	data *mappedFile
	hit  *mappedFile
}

// Open memory-maps the four required lexicon files under dir.
func Open(dir string) (*Lexicon, error) {
	str, err := openMapped(filepath.Join(dir, FileStr))
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", FileStr, err)
	}
	meta, err := openMapped(filepath.Join(dir, FileMeta))
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", FileMeta, err)
	}
	if meta.Len()%termMetaSize != 0 {
		return nil, fmt.Errorf("lexicon: %s size %d is not a multiple of %d", FileMeta, meta.Len(), termMetaSize)
	}
	data, err := openMapped(filepath.Join(dir, FileData))
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", FileData, err)
	}
	if data.Len()%postingSize != 0 {
		return nil, fmt.Errorf("lexicon: %s size %d is not a multiple of %d", FileData, data.Len(), postingSize)
	}
	hit, err := openMapped(filepath.Join(dir, FileHit))
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", FileHit, err)
	}
	return &Lexicon{str: str, meta: meta, data: data, hit: hit}, nil
}

// Close releases the underlying mappings.
func (l *Lexicon) Close() error {
	var err error
	for _, m := range []*mappedFile{l.str, l.meta, l.data, l.hit} {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// TermCount is the number of terms published in this lexicon.
func (l *Lexicon) TermCount() uint32 {
	return uint32(l.meta.Len() / termMetaSize)
}

// Meta returns the TermMeta record for termID.
func (l *Lexicon) Meta(termID uint32) (TermMeta, error) {
	b, err := l.meta.slice(uint64(termID)*termMetaSize, termMetaSize)
	if err != nil {
		return TermMeta{}, err
	}
	return TermMeta{
		Str:      binary.LittleEndian.Uint32(b[0:4]),
		Data:     binary.LittleEndian.Uint32(b[4:8]),
		DataSize: binary.LittleEndian.Uint32(b[8:12]),
	}, nil
}

// String reads the NUL-terminated term string stored at the given str
// offset into lexstr.
func (l *Lexicon) String(offset uint32) (string, error) {
	data := l.str.data
	if uint64(offset) > uint64(len(data)) {
		return "", fmt.Errorf("lexicon: str offset %d out of range (len %d)", offset, len(data))
	}
	end := int(offset)
	for end < len(data) && data[end] != 0 {
		end++
	}
	if end >= len(data) {
		return "", fmt.Errorf("lexicon: unterminated string at offset %d", offset)
	}
	return string(data[offset:end]), nil
}

// Posting returns the i-th global posting record (a byte offset into
// lexdata divided by postingSize, as recorded by TermMeta.Data).
func (l *Lexicon) Posting(index uint32) (Posting, error) {
	b, err := l.data.slice(uint64(index)*postingSize, postingSize)
	if err != nil {
		return Posting{}, err
	}
	return Posting{
		PostIDWithChildren: binary.LittleEndian.Uint32(b[0:4]),
		HitInfo:            binary.LittleEndian.Uint32(b[4:8]),
	}, nil
}

// Postings returns the DataSize postings belonging to meta, in on-disk
// order (sorted ascending by post id — spec.md §4.C5).
func (l *Lexicon) Postings(meta TermMeta) ([]Posting, error) {
	start := meta.Data / postingSize
	out := make([]Posting, meta.DataSize)
	for i := range out {
		p, err := l.Posting(start + uint32(i))
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Hits resolves a posting's hit stream, transparently handling the
// inline-vs-spilled representation (spec.md §3 "Posting").
func (l *Lexicon) Hits(p Posting) ([]byte, error) {
	if n := HitInfoInlineCount(p.HitInfo); n > 0 {
		return UnpackInlineHits(p.HitInfo), nil
	}
	offset := uint64(HitInfoSpillOffset(p.HitInfo))
	countByte, err := l.hit.slice(offset, 1)
	if err != nil {
		return nil, err
	}
	count := uint64(countByte[0])
	if count == 0 {
		return nil, nil
	}
	return l.hit.slice(offset+1, count)
}
