package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/wolfpld/usenetarchive-sub002/internal/archivelock"
	"github.com/wolfpld/usenetarchive-sub002/internal/build"
	"github.com/wolfpld/usenetarchive-sub002/internal/config"
	"github.com/wolfpld/usenetarchive-sub002/internal/debug"
	"github.com/wolfpld/usenetarchive-sub002/internal/ingest"
	"github.com/wolfpld/usenetarchive-sub002/internal/tokenizer"
)

// manifestName is the build-run metadata sidecar written alongside the
// lexicon files, so a later `uat stats` or support request can be tied
// back to the run that produced an archive.
const manifestName = "uat-manifest.json"

type buildManifest struct {
	RunID      string         `json:"run_id"`
	BuiltAt    time.Time      `json:"built_at"`
	Input      string         `json:"input"`
	Workers    int            `json:"workers"`
	TermCount  int            `json:"term_count"`
	PostingsN  int            `json:"postings"`
	FileSizes  map[string]int `json:"file_sizes"`
}

var buildCommand = &cli.Command{
	Name:      "build",
	Usage:     "ingest an NDJSON message dump and build a lexicon archive",
	ArgsUsage: "<messages.ndjson>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "archive output directory", Required: true},
		&cli.IntFlag{Name: "workers", Usage: "fuzzy-neighborhood worker count (0 = NumCPU)"},
	},
	Action: runBuild,
}

func runBuild(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("expected exactly one NDJSON input path", 1)
	}
	inputPath := c.Args().First()
	dir := c.String("dir")

	cfg, err := config.LoadKDL(dir)
	if err != nil {
		cfg = config.Default()
	}
	workers := c.Int("workers")
	if workers == 0 {
		workers = cfg.Build.Workers
	}
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	runID := uuid.New().String()
	debug.LogBuild("starting run %s on %s -> %s", runID, inputPath, dir)

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	lock, err := archivelock.Acquire(dir, true)
	if err != nil {
		return fmt.Errorf("acquire archive lock: %w", err)
	}
	defer lock.Release()

	tok := tokenizer.New(cfg.Build.MinTermLength, cfg.Build.MaxTermLength)
	acc, err := ingest.Load(f, tok)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	progress := mpb.New(mpb.WithWidth(48))
	var bar *mpb.Bar
	opts := build.FuzzyOptions{
		Workers: workers,
		Progress: func(done, total uint32) {
			if bar == nil && total > 0 {
				bar = progress.AddBar(int64(total),
					mpb.PrependDecorators(decor.Name("fuzzy neighbors")),
					mpb.AppendDecorators(decor.Percentage()),
				)
			}
			if bar != nil {
				bar.SetCurrent(int64(done))
			}
		},
	}

	result, err := build.Build(acc, dir, opts)
	progress.Wait()
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	fmt.Printf("run %s: %s terms, %s postings\n", runID,
		humanize.Comma(int64(result.TermCount)), humanize.Comma(int64(result.PostingsN)))
	for name, size := range result.FileSizes {
		fmt.Printf("  %-14s %s\n", name, humanize.Bytes(uint64(size)))
	}

	if err := writeManifest(dir, buildManifest{
		RunID:     runID,
		BuiltAt:   time.Now().UTC(),
		Input:     inputPath,
		Workers:   workers,
		TermCount: result.TermCount,
		PostingsN: result.PostingsN,
		FileSizes: result.FileSizes,
	}); err != nil {
		debug.LogBuild("run %s: manifest write failed: %v", runID, err)
	}

	debug.LogBuild("run %s complete", runID)
	return nil
}

func writeManifest(dir string, m buildManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, manifestName), data, 0o644)
}
