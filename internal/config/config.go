// Package config holds the archive/build configuration consumed by
// cmd/uat, loaded from an optional ".uat.kdl" file with built-in defaults
// when absent (SPEC_FULL.md §2 "Configuration", grounded on the teacher's
// internal/config package).
package config

import "github.com/wolfpld/usenetarchive-sub002/internal/search"

// Config is the full set of tunables for building and searching an
// archive.
type Config struct {
	Build   Build
	Search  Search
	Archive Archive
}

// Build controls the offline pipeline (internal/build).
type Build struct {
	// Workers sizes the fuzzy-neighborhood worker pool (spec.md §5);
	// 0 means "use runtime.NumCPU()".
	Workers int
	// MinTermLength and MaxTermLength bound the tokenizer's accepted
	// token length (internal/tokenizer).
	MinTermLength int
	MaxTermLength int
}

// Search controls default query-time behavior.
type Search struct {
	DefaultFlags    uint32
	MaxResults      int
	FuzzyChecksDisk bool // when true, `uat search` opens the fuzzy files even without --fuzzy, so FuzzySearch from DefaultFlags can take effect
}

// Archive names the on-disk location of a built lexicon.
type Archive struct {
	Dir string
}

// Default returns the built-in configuration used when no ".uat.kdl" file
// is present.
func Default() *Config {
	return &Config{
		Build: Build{
			Workers:       0,
			MinTermLength: 3,
			MaxTermLength: 32,
		},
		Search: Search{
			DefaultFlags: uint32(search.AdjacentWords | search.FuzzySearch),
			MaxResults:   100,
		},
		Archive: Archive{
			Dir: ".",
		},
	}
}
