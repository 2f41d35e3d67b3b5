package lexicon

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mappedFile is a read-only memory-mapped view of a lexicon array file.
// Lexicon files are produced once by the build pipeline and never mutated
// after publication (spec.md §3 "Ownership and lifecycle"), so a single
// shared mapping for the lifetime of the opener is safe without locking.
//
// If the mmap syscall is unavailable (e.g. the filesystem doesn't support
// it), Open falls back to reading the whole file into a heap buffer — the
// accessors below are identical either way, per the design note that an
// implementation "may substitute bounded reads if mmap is unavailable"
// (spec.md §9).
type mappedFile struct {
	data   []byte
	mapped bool
}

func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := st.Size()
	if size == 0 {
		return &mappedFile{data: nil}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		buf, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("mmap %s: %w (fallback read also failed: %v)", path, err, rerr)
		}
		return &mappedFile{data: buf}, nil
	}
	return &mappedFile{data: data, mapped: true}, nil
}

func (m *mappedFile) Close() error {
	if m == nil || m.data == nil {
		return nil
	}
	if m.mapped {
		return unix.Munmap(m.data)
	}
	return nil
}

func (m *mappedFile) Len() int {
	if m == nil {
		return 0
	}
	return len(m.data)
}

// slice returns data[off:off+n], validating the range falls entirely inside
// the mapped region (the "never hold partial records across page boundaries
// without length checks" invariant from spec.md §9).
func (m *mappedFile) slice(off, n uint64) ([]byte, error) {
	end := off + n
	if m == nil || end < off || end > uint64(len(m.data)) {
		return nil, fmt.Errorf("lexicon: out-of-bounds read [%d:%d) of %d-byte file", off, end, m.Len())
	}
	return m.data[off:end], nil
}
