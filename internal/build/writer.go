package build

import (
	"encoding/binary"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// Encoded holds the byte-exact contents of the four core lexicon files
// plus the hash-index and fuzzy-neighbor satellites, ready to be written
// to disk (spec.md §6).
type Encoded struct {
	Str  []byte
	Meta []byte
	Data []byte
	Hit  []byte

	HashOffsets []byte
	HashData    []byte

	DistMeta []byte
	Dist     []byte
}

// EncodeLexicon runs the full build pipeline over an Accumulator: suffix
// sharing (C4), posting/hit sorting (C5), hash-index construction (C6),
// then packs the term metadata, postings and spilled hit streams (C3).
// Fuzzy neighborhoods (C7) are encoded separately by BuildFuzzy since they
// require the worker pool and are the one stage with internal parallelism.
func EncodeLexicon(acc *Accumulator) (*Encoded, []string, []uint32) {
	terms := acc.Terms()
	strBlob, strOffsets := BuildStrings(terms)

	metaBuf := make([]byte, 0, len(terms)*12)
	dataBuf := make([]byte, 0)
	hitBuf := make([]byte, 0)

	for i, term := range terms {
		postings := append([]RawPosting(nil), acc.Postings(term)...)
		SortTermPostings(postings)

		dataOffset := uint32(len(dataBuf))
		for _, p := range postings {
			postWithChildren := lexicon.PackPostID(p.PostID, p.ChildCount)
			var hitInfo uint32
			if len(p.Hits) <= 3 {
				hitInfo = lexicon.PackInlineHits(p.Hits)
			} else {
				spillOffset := uint32(len(hitBuf))
				hitBuf = append(hitBuf, byte(len(p.Hits)))
				hitBuf = append(hitBuf, p.Hits...)
				hitInfo = lexicon.PackSpillOffset(spillOffset)
			}
			dataBuf = appendUint32(dataBuf, postWithChildren)
			dataBuf = appendUint32(dataBuf, hitInfo)
		}

		metaBuf = appendUint32(metaBuf, strOffsets[i])
		metaBuf = appendUint32(metaBuf, dataOffset)
		metaBuf = appendUint32(metaBuf, uint32(len(postings)))
	}

	hashOffsets, hashData := BuildHash(terms, strOffsets)

	return &Encoded{
		Str:         strBlob,
		Meta:        metaBuf,
		Data:        dataBuf,
		Hit:         hitBuf,
		HashOffsets: hashOffsets,
		HashData:    hashData,
	}, terms, strOffsets
}

func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}
