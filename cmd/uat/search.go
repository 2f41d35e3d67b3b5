package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wolfpld/usenetarchive-sub002/internal/archivelock"
	"github.com/wolfpld/usenetarchive-sub002/internal/config"
	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
	"github.com/wolfpld/usenetarchive-sub002/internal/search"
)

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "query a built lexicon archive",
	ArgsUsage: "<archive-dir> <query...>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "adjacent", Usage: "score adjacent-word proximity"},
		&cli.BoolFlag{Name: "all-words", Usage: "require every resolved word to match (AND join)"},
		&cli.BoolFlag{Name: "fuzzy", Usage: "expand terms to their fuzzy neighbors"},
		&cli.BoolFlag{Name: "set-logic", Usage: "honor +term/-term must/cant prefixes"},
		&cli.IntFlag{Name: "limit", Value: 20, Usage: "max results to print"},
	},
	Action: runSearch,
}

func runSearch(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return cli.Exit("expected <archive-dir> <query...>", 1)
	}
	dir := c.Args().First()
	query := strings.Join(c.Args().Tail(), " ")

	cfg, err := config.LoadKDL(dir)
	if err != nil {
		cfg = config.Default()
	}

	lock, err := archivelock.Acquire(dir, false)
	if err != nil {
		return fmt.Errorf("acquire archive lock: %w", err)
	}
	defer lock.Release()

	lex, err := lexicon.Open(dir)
	if err != nil {
		return fmt.Errorf("open lexicon: %w", err)
	}
	defer lex.Close()

	hash, err := lexicon.OpenHash(dir, lex)
	if err != nil {
		return fmt.Errorf("open hash index: %w", err)
	}
	defer hash.Close()

	var fuzzy *lexicon.FuzzyIndex
	if cfg.Search.FuzzyChecksDisk || c.Bool("fuzzy") {
		if fz, ferr := lexicon.OpenFuzzy(dir); ferr == nil {
			fuzzy = fz
			defer fuzzy.Close()
		}
	}

	engine := search.NewEngine(lex, hash, fuzzy, 0)

	flags := search.Flags(cfg.Search.DefaultFlags)
	if c.IsSet("adjacent") {
		flags = setFlag(flags, search.AdjacentWords, c.Bool("adjacent"))
	}
	if c.IsSet("all-words") {
		flags = setFlag(flags, search.RequireAllWords, c.Bool("all-words"))
	}
	if c.IsSet("fuzzy") {
		flags = setFlag(flags, search.FuzzySearch, c.Bool("fuzzy"))
	}
	if c.IsSet("set-logic") {
		flags = setFlag(flags, search.SetLogic, c.Bool("set-logic"))
	}

	data, err := engine.Search(query, flags, lexicon.FilterAll)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(data.Matched) > 0 {
		fmt.Println("matched:", strings.Join(data.Matched, ", "))
	} else if hints := suggestTerms(lex, query); len(hints) > 0 {
		fmt.Println("no terms matched; did you mean:", strings.Join(hints, ", "))
	}
	limit := c.Int("limit")
	for i, r := range data.Results {
		if i >= limit {
			fmt.Printf("... %d more\n", len(data.Results)-limit)
			break
		}
		fmt.Printf("%6d  rank=%.3f\n", r.PostID, r.Rank)
	}
	return nil
}

func setFlag(flags search.Flags, bit search.Flags, on bool) search.Flags {
	if on {
		return flags | bit
	}
	return flags &^ bit
}
