package build

import (
	"os"
	"path/filepath"

	"github.com/wolfpld/usenetarchive-sub002/internal/archiveerrors"
	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

// Result reports the sizes of the files written by Build, for callers that
// want to log or display build summaries (SPEC_FULL.md's CLI "build"
// subcommand uses this with go-humanize).
type Result struct {
	Dir        string
	TermCount  int
	PostingsN  int
	FileSizes  map[string]int
}

// Build runs the full offline pipeline over acc and writes the resulting
// lexicon files into dir (spec.md §2 "Control flow at build time", §6 file
// layout). dir is created if it does not exist. Fuzzy neighborhoods are
// computed with the given FuzzyOptions (worker count, progress callback).
func Build(acc *Accumulator, dir string, opts FuzzyOptions) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, archiveerrors.NewBuildError("mkdir", err)
	}

	enc, terms, strOffsets := EncodeLexicon(acc)

	distMeta, dist := BuildFuzzy(terms, strOffsets, opts)
	enc.DistMeta = distMeta
	enc.Dist = dist

	files := map[string][]byte{
		lexicon.FileStr:      enc.Str,
		lexicon.FileMeta:     enc.Meta,
		lexicon.FileData:     enc.Data,
		lexicon.FileHit:      enc.Hit,
		lexicon.FileHash:     enc.HashOffsets,
		lexicon.FileHashData: enc.HashData,
		lexicon.FileDist:     enc.Dist,
		lexicon.FileDistMeta: enc.DistMeta,
	}

	sizes := make(map[string]int, len(files))
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := writeFileAtomic(path, data); err != nil {
			return nil, archiveerrors.NewBuildError("write "+name, err)
		}
		sizes[name] = len(data)
	}

	postingsN := len(enc.Data) / 8 // 2 uint32 words per posting record

	return &Result{
		Dir:       dir,
		TermCount: len(terms),
		PostingsN: postingsN,
		FileSizes: sizes,
	}, nil
}

// writeFileAtomic writes data to a temp file in the same directory as path
// and renames it into place, so a crash mid-build never leaves a partially
// written lexicon file for the next stage to mistake for a complete one
// (spec.md §7: "partial files must be treated as invalid").
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
