package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/wolfpld/usenetarchive-sub002/internal/classifier"
	"github.com/wolfpld/usenetarchive-sub002/internal/tokenizer"
)

const classifierDBName = "uat-classifier.db"

var trainCommand = &cli.Command{
	Name:  "classify",
	Usage: "train or score the spam-classifier bank (SPEC_FULL.md's terminator port)",
	Subcommands: []*cli.Command{
		{
			Name:      "train",
			Usage:     "label every message in an NDJSON dump as spam or ham",
			ArgsUsage: "<archive-dir> <messages.ndjson>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "spam", Usage: "label every message as spam (default: ham)"},
			},
			Action: runClassifyTrain,
		},
		{
			Name:      "score",
			Usage:     "print the combined spam probability for one message body",
			ArgsUsage: "<archive-dir> <text>",
			Action:    runClassifyScore,
		},
	},
}

func openBank(dir string) (*classifier.Bank, *classifier.Store, error) {
	store, err := classifier.OpenStore(filepath.Join(dir, classifierDBName))
	if err != nil {
		return nil, nil, err
	}
	bank, err := classifier.OpenBank(store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return bank, store, nil
}

func runClassifyTrain(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("expected <archive-dir> <messages.ndjson>", 1)
	}
	dir := c.Args().Get(0)
	path := c.Args().Get(1)
	isSpam := c.Bool("spam")

	bank, store, err := openBank(dir)
	if err != nil {
		return fmt.Errorf("open classifier store: %w", err)
	}
	defer store.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	tok := tokenizer.New(tokenizer.DefaultMinLen, tokenizer.DefaultMaxLen)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	trained := 0
	for scanner.Scan() {
		var m struct {
			Subject string `json:"subject"`
			Body    string `json:"body"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &m); err != nil {
			continue
		}
		terms := termsOf(tok, m.Subject+" "+m.Body)
		if err := bank.Train(terms, isSpam); err != nil {
			return fmt.Errorf("train: %w", err)
		}
		trained++
	}
	fmt.Printf("trained on %d messages (spam=%v)\n", trained, isSpam)
	return nil
}

func runClassifyScore(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("expected <archive-dir> <text>", 1)
	}
	dir := c.Args().Get(0)
	text := c.Args().Get(1)

	bank, store, err := openBank(dir)
	if err != nil {
		return fmt.Errorf("open classifier store: %w", err)
	}
	defer store.Close()

	tok := tokenizer.New(tokenizer.DefaultMinLen, tokenizer.DefaultMaxLen)
	score, err := bank.Score(termsOf(tok, text))
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	verdict := "ham"
	if score >= classifier.Threshold {
		verdict = "spam"
	}
	fmt.Printf("%.4f %s\n", score, verdict)
	return nil
}

func termsOf(tok *tokenizer.Tokenizer, text string) []string {
	tokens := tok.Tokenize([]byte(text))
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}
