package lexicon

// TermMeta is the fixed-width record of the lexmeta array, indexed by
// term_id (spec.md §3 "TermMeta", §6 record layout).
type TermMeta struct {
	Str      uint32 // offset into the lexstr blob
	Data     uint32 // byte offset into lexdata (data/sizeof(Posting) = first posting index)
	DataSize uint32 // number of postings for this term
}

const termMetaSize = 12

// Posting is one (term, post) association (spec.md §3 "Posting").
type Posting struct {
	PostIDWithChildren uint32
	HitInfo            uint32
}

const postingSize = 8

const (
	// PostMask isolates the low 27 bits of PostIDWithChildren (the post id).
	PostMask uint32 = 0x07FFFFFF
	// ChildMask isolates the high 5 bits (the capped child count).
	ChildMask  uint32 = 0xF8000000
	ChildShift        = 27
	// ChildMax is the saturation cap for the child-count field.
	ChildMax uint32 = 0x1F
)

// PostID returns the low 27-bit post id.
func PostID(v uint32) uint32 { return v & PostMask }

// ChildCount returns the capped (0..31) child count.
func ChildCount(v uint32) uint32 { return v >> ChildShift }

// PackPostID folds a post id and a child count into the combined field
// stored in a Posting, saturating the child count at ChildMax.
func PackPostID(postID, childCount uint32) uint32 {
	if childCount > ChildMax {
		childCount = ChildMax
	}
	return (postID & PostMask) | (childCount << ChildShift)
}

const (
	// hitCountInlineShift/Mask isolate the high 3 bits of HitInfo that
	// select between the inline and spilled representations (spec.md §3).
	hitCountInlineShift = 29
	hitCountInlineMask  = 0x07
	hitInlineDataMask   = 0x1FFFFFFF // low 29 bits
)

// HitInfoInlineCount returns the inline hit count encoded in the high 3 bits
// of hit_info; 0 means the low 29 bits are a spill offset instead.
func HitInfoInlineCount(hitInfo uint32) int {
	return int(hitInfo >> hitCountInlineShift)
}

// HitInfoSpillOffset returns the offset into lexhit encoded in the low 29
// bits, valid only when HitInfoInlineCount returns 0.
func HitInfoSpillOffset(hitInfo uint32) uint32 {
	return hitInfo & hitInlineDataMask
}

// PackInlineHits packs up to 3 hit bytes directly into a hit_info word.
func PackInlineHits(hits []byte) uint32 {
	n := len(hits)
	if n > 3 {
		n = 3
	}
	var data uint32
	for i := 0; i < n; i++ {
		data |= uint32(hits[i]) << (8 * i)
	}
	return (uint32(n) << hitCountInlineShift) | (data & hitInlineDataMask)
}

// UnpackInlineHits extracts the up-to-3 inline hit bytes from a hit_info
// word whose inline count is > 0.
func UnpackInlineHits(hitInfo uint32) []byte {
	n := HitInfoInlineCount(hitInfo)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(hitInfo >> (8 * i))
	}
	return out
}

// PackSpillOffset encodes a spill-array offset (hit_count_inline == 0).
func PackSpillOffset(offset uint32) uint32 {
	return offset & hitInlineDataMask
}

// FuzzyNeighbor is one decoded entry of a term's fuzzy-neighbor list: an
// edit distance (0..3, though 0 never occurs — see spec.md §4.C7) and the
// str_offset of the matched neighbor term.
type FuzzyNeighbor struct {
	Distance     uint8
	NeighborStr  uint32
}

const (
	fuzzyDistShift = 30
	fuzzyStrMask   = 0x3FFFFFFF
)

// PackFuzzyNeighbor encodes (distance, neighbor_str_offset) into the 32-bit
// word stored in the lexdist file.
func PackFuzzyNeighbor(distance uint8, strOffset uint32) uint32 {
	return (uint32(distance) << fuzzyDistShift) | (strOffset & fuzzyStrMask)
}

// UnpackFuzzyNeighbor decodes a lexdist word.
func UnpackFuzzyNeighbor(word uint32) FuzzyNeighbor {
	return FuzzyNeighbor{
		Distance:    uint8(word >> fuzzyDistShift),
		NeighborStr: word & fuzzyStrMask,
	}
}

// HashPair is one (str_offset, term_id) entry of a hash bucket (spec.md
// §3 "Hash bucket", §6 lexhashdata).
type HashPair struct {
	Str    uint32
	TermID uint32
}

const hashPairSize = 8
