package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
)

var statsCommand = &cli.Command{
	Name:      "stats",
	Usage:     "report the size and term count of a built lexicon archive",
	ArgsUsage: "<archive-dir>",
	Action:    runStats,
}

func runStats(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("expected <archive-dir>", 1)
	}
	dir := c.Args().First()

	lex, err := lexicon.Open(dir)
	if err != nil {
		return fmt.Errorf("open lexicon: %w", err)
	}
	defer lex.Close()

	fmt.Printf("terms: %s\n", humanize.Comma(int64(lex.TermCount())))

	for _, name := range []string{
		lexicon.FileStr, lexicon.FileMeta, lexicon.FileData, lexicon.FileHit,
		lexicon.FileHash, lexicon.FileHashData, lexicon.FileDist, lexicon.FileDistMeta,
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		fmt.Printf("  %-14s %s\n", name, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}
