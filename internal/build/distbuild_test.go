package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

func decodeNeighbors(t *testing.T, meta, data []byte, id int) []lexicon.FuzzyNeighbor {
	t.Helper()
	off := le32(meta[id*4 : id*4+4])
	if off == 0 {
		return nil
	}
	count := le32(data[off : off+4])
	out := make([]lexicon.FuzzyNeighbor, count)
	for i := uint32(0); i < count; i++ {
		w := le32(data[off+4+i*4 : off+4+i*4+4])
		out[i] = lexicon.UnpackFuzzyNeighbor(w)
	}
	return out
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func TestBuildFuzzyFindsCloseNeighbors(t *testing.T) {
	terms := []string{"color", "colour", "unrelated"}
	_, offsets := BuildStrings(terms)
	meta, data := BuildFuzzy(terms, offsets, FuzzyOptions{Workers: 2})

	colorNeighbors := decodeNeighbors(t, meta, data, 0)
	require.Len(t, colorNeighbors, 1)
	assert.Equal(t, uint8(1), colorNeighbors[0].Distance)

	unrelatedNeighbors := decodeNeighbors(t, meta, data, 2)
	assert.Empty(t, unrelatedNeighbors)
}

// TestBuildFuzzySymmetry covers spec.md §8: if b is a neighbor of a with
// distance d, a is a neighbor of b with distance d.
func TestBuildFuzzySymmetry(t *testing.T) {
	terms := []string{"testing", "testings", "tasting"}
	_, offsets := BuildStrings(terms)
	meta, data := BuildFuzzy(terms, offsets, FuzzyOptions{Workers: 4})

	for i := range terms {
		for _, n := range decodeNeighbors(t, meta, data, i) {
			// Find the term whose stored string offset equals n.NeighborStr,
			// then check the reverse edge exists with the same distance.
			var j int
			for k, off := range offsets {
				if off == n.NeighborStr {
					j = k
					break
				}
			}
			reverse := decodeNeighbors(t, meta, data, j)
			found := false
			for _, rn := range reverse {
				if rn.NeighborStr == offsets[i] {
					found = true
					assert.Equal(t, n.Distance, rn.Distance)
				}
			}
			assert.True(t, found, "missing symmetric edge %d -> %d", i, j)
		}
	}
}

// TestBuildFuzzyLengthThreeNeverDistanceTwo covers spec.md §8's boundary
// property: terms of length 3 never produce distance-2 fuzzy neighbors.
func TestBuildFuzzyLengthThreeNeverDistanceTwo(t *testing.T) {
	terms := []string{"cat", "cot", "cap", "dog"}
	_, offsets := BuildStrings(terms)
	meta, data := BuildFuzzy(terms, offsets, FuzzyOptions{Workers: 2})
	for i := range terms {
		for _, n := range decodeNeighbors(t, meta, data, i) {
			assert.LessOrEqual(t, n.Distance, uint8(1))
		}
	}
}

func TestBoundedLevenshtein(t *testing.T) {
	cases := []struct {
		a, b  string
		bound int
		want  int
	}{
		{"cat", "cat", 2, 0},
		{"cat", "cot", 2, 1},
		{"cat", "dog", 2, 3}, // exceeds bound, exact overshoot not asserted
		{"kitten", "sitting", 3, 3},
	}
	for _, c := range cases {
		got := boundedLevenshtein([]rune(c.a), []rune(c.b), c.bound)
		if c.want > c.bound {
			assert.Greater(t, got, c.bound)
		} else {
			assert.Equal(t, c.want, got)
		}
	}
}

func TestBuildFuzzyEmptyInput(t *testing.T) {
	meta, data := BuildFuzzy(nil, nil, FuzzyOptions{Workers: 2})
	assert.Empty(t, meta)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)
}

func TestBuildFuzzyProgressCallback(t *testing.T) {
	terms := []string{"alpha", "alphas", "beta", "betas", "gamma"}
	_, offsets := BuildStrings(terms)
	var calls int
	var lastDone, lastTotal uint32
	BuildFuzzy(terms, offsets, FuzzyOptions{Workers: 2, Progress: func(done, total uint32) {
		calls++
		lastDone, lastTotal = done, total
	}})
	assert.Equal(t, len(terms), calls)
	assert.Equal(t, uint32(len(terms)), lastDone)
	assert.Equal(t, uint32(len(terms)), lastTotal)
}
