// Package ingest is a minimal NDJSON message-ingestion driver
// (SPEC_FULL.md §4, loosely grounded on original_source/extract-msgmeta's
// header/quote-depth classification). The full MIME/charset/NNTP pipeline
// is out of scope per spec.md's explicit Non-goals; this exists only so
// `uat build` has a self-contained path from raw messages to an
// Accumulator without requiring an external corpus loader.
package ingest

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/wolfpld/usenetarchive-sub002/internal/archiveerrors"
	"github.com/wolfpld/usenetarchive-sub002/internal/build"
	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
	"github.com/wolfpld/usenetarchive-sub002/internal/tokenizer"
)

// Message is one NDJSON-encoded input record: `{"id":1,"parent":0,"subject":"...","from":"...","body":"..."}`.
// Parent 0 (or omitted) marks a root post.
type Message struct {
	ID      uint32 `json:"id"`
	Parent  uint32 `json:"parent"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	Body    string `json:"body"`
}

// Load reads NDJSON messages from r and accumulates them into a fresh
// Accumulator, ready for build.Build. It makes two passes over the input:
// the first computes child counts from parent links, the second tokenizes
// and classifies each message's content.
func Load(r io.Reader, tok *tokenizer.Tokenizer) (*build.Accumulator, error) {
	var all []Message
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var m Message
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, archiveerrors.NewIngestError("ndjson", err)
		}
		all = append(all, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, archiveerrors.NewIngestError("ndjson", err)
	}

	childCount := make(map[uint32]uint32)
	for _, m := range all {
		if m.Parent != 0 {
			childCount[m.Parent]++
		}
	}

	acc := build.NewAccumulator()
	for _, m := range all {
		acc.BeginPost(m.ID, childCount[m.ID])
		classifyMessage(acc, tok, m)
		acc.EndPost()
	}
	return acc, nil
}

// classifyMessage tokenizes a message's header and body, emitting hits
// tagged by structural position: header fields as Header hits, quoted
// lines (leading '>' runs) as Quote1/Quote2/Quote3+ by depth, the
// signature block (after a line that is exactly "-- ") as Signature,
// attribution lines ("X wrote:") as Wrote, and everything else as Content.
func classifyMessage(acc *build.Accumulator, tok *tokenizer.Tokenizer, m Message) {
	for _, t := range tok.Tokenize([]byte(m.Subject)) {
		acc.AddHit(t.Text, lexicon.HitHeader)
	}
	for _, t := range tok.Tokenize([]byte(m.From)) {
		acc.AddHit(t.Text, lexicon.HitHeader)
	}

	inSignature := false
	for _, line := range strings.Split(m.Body, "\n") {
		if line == "-- " {
			inSignature = true
			continue
		}
		hitType := classifyLine(line, inSignature)
		for _, t := range tok.Tokenize([]byte(line)) {
			acc.AddHit(t.Text, hitType)
		}
	}
}

func classifyLine(line string, inSignature bool) lexicon.HitType {
	if inSignature {
		return lexicon.HitSignature
	}
	depth := quoteDepth(line)
	switch {
	case depth >= 3:
		return lexicon.HitQuote3
	case depth == 2:
		return lexicon.HitQuote2
	case depth == 1:
		return lexicon.HitQuote1
	}
	if isWroteLine(line) {
		return lexicon.HitWrote
	}
	return lexicon.HitContent
}

func quoteDepth(line string) int {
	depth := 0
	for _, r := range line {
		switch r {
		case '>':
			depth++
		case ' ', '\t':
			continue
		default:
			return depth
		}
	}
	return depth
}

func isWroteLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasSuffix(trimmed, "wrote:") || strings.HasSuffix(trimmed, "writes:")
}
