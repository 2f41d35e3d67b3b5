package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfpld/usenetarchive-sub002/internal/archiveerrors"
	"github.com/wolfpld/usenetarchive-sub002/internal/build"
	"github.com/wolfpld/usenetarchive-sub002/internal/lexicon"
	"github.com/wolfpld/usenetarchive-sub002/internal/tokenizer"
)

func TestLoadComputesChildCountFromParentLinks(t *testing.T) {
	ndjson := `{"id":1,"parent":0,"subject":"root","body":"hello there"}
{"id":2,"parent":1,"subject":"reply one","body":"hello there"}
{"id":3,"parent":1,"subject":"reply two","body":"hello there"}
`
	acc, err := Load(strings.NewReader(ndjson), tokenizer.New(0, 0))
	require.NoError(t, err)

	postings := acc.Postings("hello")
	require.Len(t, postings, 3)
	byID := map[uint32]uint32{}
	for _, p := range postings {
		byID[p.PostID] = p.ChildCount
	}
	assert.Equal(t, uint32(2), byID[1])
	assert.Equal(t, uint32(0), byID[2])
	assert.Equal(t, uint32(0), byID[3])
}

func TestLoadEmitsHeaderHitsFromSubjectAndFrom(t *testing.T) {
	ndjson := `{"id":1,"parent":0,"subject":"kernel panic","from":"alice","body":"nothing relevant"}` + "\n"
	acc, err := Load(strings.NewReader(ndjson), tokenizer.New(0, 0))
	require.NoError(t, err)

	assertHitType(t, acc, "kernel", lexicon.HitHeader)
	assertHitType(t, acc, "alice", lexicon.HitHeader)
}

func TestLoadClassifiesQuoteDepthByLeadingCarets(t *testing.T) {
	body := strings.Join([]string{
		"fresh comment",
		"> once quoted",
		">> twice quoted",
		">>> thrice quoted",
	}, "\n")
	ndjson := `{"id":1,"parent":0,"body":` + jsonString(body) + `}` + "\n"
	acc, err := Load(strings.NewReader(ndjson), tokenizer.New(0, 0))
	require.NoError(t, err)

	assertHitType(t, acc, "fresh", lexicon.HitContent)
	assertHitType(t, acc, "once", lexicon.HitQuote1)
	assertHitType(t, acc, "twice", lexicon.HitQuote2)
	assertHitType(t, acc, "thrice", lexicon.HitQuote3)
}

func TestLoadClassifiesSignatureBlockAfterDelimiter(t *testing.T) {
	body := strings.Join([]string{
		"main message body",
		"-- ",
		"regards team",
	}, "\n")
	ndjson := `{"id":1,"parent":0,"body":` + jsonString(body) + `}` + "\n"
	acc, err := Load(strings.NewReader(ndjson), tokenizer.New(0, 0))
	require.NoError(t, err)

	assertHitType(t, acc, "main", lexicon.HitContent)
	assertHitType(t, acc, "regards", lexicon.HitSignature)
	assertHitType(t, acc, "team", lexicon.HitSignature)
}

func TestLoadClassifiesWroteAttributionLines(t *testing.T) {
	body := "alice wrote:\nsomething she said"
	ndjson := `{"id":1,"parent":0,"body":` + jsonString(body) + `}` + "\n"
	acc, err := Load(strings.NewReader(ndjson), tokenizer.New(0, 0))
	require.NoError(t, err)

	assertHitType(t, acc, "alice", lexicon.HitWrote)
	assertHitType(t, acc, "something", lexicon.HitContent)
}

func TestLoadMalformedJSONReturnsIngestError(t *testing.T) {
	_, err := Load(strings.NewReader("not json\n"), tokenizer.New(0, 0))
	require.Error(t, err)
	var ingestErr *archiveerrors.IngestError
	assert.ErrorAs(t, err, &ingestErr)
}

func TestLoadSkipsBlankLines(t *testing.T) {
	ndjson := "\n\n" + `{"id":1,"parent":0,"body":"hello there"}` + "\n\n"
	acc, err := Load(strings.NewReader(ndjson), tokenizer.New(0, 0))
	require.NoError(t, err)
	assert.Len(t, acc.Postings("hello"), 1)
}

// assertHitType checks the decoded type of term's single recorded hit for
// the lone post in acc.
func assertHitType(t *testing.T, acc *build.Accumulator, term string, want lexicon.HitType) {
	t.Helper()
	postings := acc.Postings(term)
	require.Len(t, postings, 1, "term %q", term)
	require.NotEmpty(t, postings[0].Hits, "term %q", term)
	assert.Equal(t, want, lexicon.DecodeType(postings[0].Hits[0]), "term %q", term)
}

func jsonString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
