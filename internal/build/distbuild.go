package build

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
	"github.com/wolfpld/usenetarchive-sub002/internal/workerpool"
)

// FuzzyOptions tunes the neighborhood builder.
type FuzzyOptions struct {
	// Workers is the worker-pool size (spec.md §5: "W threads created at
	// construction"). Defaults to runtime.NumCPU() when <= 0.
	Workers int
	// Progress, if non-nil, is called after each processed term while the
	// shared progress-counter lock is held (spec.md §4.C7 "global counter
	// for progress is under one shared lock"), so calls never overlap and
	// done rises by exactly one per call.
	Progress func(done, total uint32)
}

// BuildFuzzy computes, for every term, its fuzzy neighborhood (all other
// terms within Levenshtein distance <= 2, or <= 1 if either side has
// length 3) per spec.md §4.C7, using a bounded two-row Levenshtein routine
// and a worker pool whose shape mirrors the original implementation's
// TaskDispatch: cpus*16 contiguous ranges, one fine-grained lock per term
// row for the symmetric writes.
func BuildFuzzy(terms []string, strOffsets []uint32, opts FuzzyOptions) (distMeta []byte, distData []byte) {
	n := len(terms)
	runeTerms := make([][]rune, n)
	lens := make([]int, n)
	for i, s := range terms {
		r := []rune(s)
		runeTerms[i] = r
		lens[i] = len(r)
	}

	neighbors := make([][]uint32, n) // packed (dist<<30 | neighborStrOffset) words
	locks := make([]sync.Mutex, n)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	pool := workerpool.New(workers)
	defer pool.Close()

	taskCount := workers * 16
	if taskCount > n {
		taskCount = n
	}
	if taskCount < 1 {
		taskCount = 1
	}

	var done uint32
	var progressMu sync.Mutex
	chunk := (n + taskCount - 1) / taskCount
	if chunk < 1 {
		chunk = 1
	}

	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		start, end := start, end // capture
		pool.Queue(func() {
			for i := start; i < end; i++ {
				processFuzzyRow(i, n, runeTerms, lens, strOffsets, neighbors, locks)
				progressMu.Lock()
				done++
				if opts.Progress != nil {
					opts.Progress(done, uint32(n))
				}
				progressMu.Unlock()
			}
		})
	}
	pool.Sync()

	return encodeFuzzy(neighbors)
}

func processFuzzyRow(i, n int, runeTerms [][]rune, lens []int, strOffsets []uint32, neighbors [][]uint32, locks []sync.Mutex) {
	shorti := lens[i] == 3
	for j := i + 1; j < n; j++ {
		if shorti && lens[j] != 3 {
			continue
		}
		diff := lens[i] - lens[j]
		if diff < 0 {
			diff = -diff
		}
		if diff > 2 {
			continue
		}

		var dist int
		if shorti {
			dist = boundedLevenshtein(runeTerms[i], runeTerms[j], 1)
			if dist > 1 {
				continue
			}
		} else {
			if lens[j] <= 3 {
				continue
			}
			dist = boundedLevenshtein(runeTerms[i], runeTerms[j], 2)
			if dist > 2 {
				continue
			}
		}

		word := lexicon.PackFuzzyNeighbor(uint8(dist), strOffsets[j])
		wordRev := lexicon.PackFuzzyNeighbor(uint8(dist), strOffsets[i])

		locks[i].Lock()
		neighbors[i] = append(neighbors[i], word)
		locks[i].Unlock()

		locks[j].Lock()
		neighbors[j] = append(neighbors[j], wordRev)
		locks[j].Unlock()
	}
}

// boundedLevenshtein computes the edit distance between a and b using the
// standard two-row algorithm, returning any value > bound once the true
// distance is known to exceed it (the exact overshoot value is not
// meaningful, only that it exceeds bound).
func boundedLevenshtein(a, b []rune, bound int) int {
	la, lb := len(a), len(b)
	if abs(la-lb) > bound {
		return bound + 1
	}

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
			if m < rowMin {
				rowMin = m
			}
		}
		if rowMin > bound {
			return rowMin
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// encodeFuzzy packs the per-term neighbor lists into the lexdistmeta /
// lexdist byte streams (spec.md §6).
func encodeFuzzy(neighbors [][]uint32) (meta, data []byte) {
	meta = make([]byte, len(neighbors)*4)
	data = make([]byte, 4) // offset 0 reserved, mirrors the hash-data convention

	for i, words := range neighbors {
		if len(words) == 0 {
			continue
		}
		offset := uint32(len(data))
		binary.LittleEndian.PutUint32(meta[i*4:i*4+4], offset)
		data = appendUint32(data, uint32(len(words)))
		for _, w := range words {
			data = appendUint32(data, w)
		}
	}
	return meta, data
}
