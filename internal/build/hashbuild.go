package build

import (
	"encoding/binary"
	"math/bits"
	"sort"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// BuildHash constructs the perfect-sized open-addressed hash index
// described in spec.md §4.C6: slots sized to the next power of two at or
// above a 0.75 load factor, (str_offset, term_id) pairs grouped by slot and
// sorted descending by string value within each bucket.
//
// terms[i] must be the term stored at strOffsets[i] (i.e. term_id i).
func BuildHash(terms []string, strOffsets []uint32) (hashOffsets, hashData []byte) {
	n := uint32(len(terms))
	size := hashTableSize(n)
	mask := size - 1

	buckets := make([][]lexicon.HashPair, size)
	for id := uint32(0); id < n; id++ {
		slot := lexicon.HashKey(terms[id]) & mask
		buckets[slot] = append(buckets[slot], lexicon.HashPair{Str: strOffsets[id], TermID: id})
	}
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return terms[bucket[i].TermID] > terms[bucket[j].TermID]
		})
	}

	hashOffsets = make([]byte, size*4)
	hashData = make([]byte, 4) // byte 0 reserved, mirrors lexstr's offset-0 reservation

	for slot, bucket := range buckets {
		if len(bucket) == 0 {
			continue // offsets default to 0 = empty
		}
		offset := uint32(len(hashData))
		binary.LittleEndian.PutUint32(hashOffsets[slot*4:slot*4+4], offset)
		hashData = appendUint32(hashData, uint32(len(bucket)))
		for _, pair := range bucket {
			hashData = appendUint32(hashData, pair.Str)
			hashData = appendUint32(hashData, pair.TermID)
		}
	}

	return hashOffsets, hashData
}

// hashTableSize returns the smallest power of two >= n*4/3 (load factor
// 0.75), with a minimum of 1 slot so an empty lexicon still yields a valid
// (if useless) hash file.
func hashTableSize(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	target := (uint64(n)*4 + 2) / 3 // ceil(n * 4/3)
	bitsNeeded := bits.Len64(target - 1)
	if target == 1 {
		bitsNeeded = 0
	}
	return 1 << uint(bitsNeeded)
}
