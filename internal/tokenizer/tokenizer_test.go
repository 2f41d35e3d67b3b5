package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLowercasesAndSplitsOnPunctuation(t *testing.T) {
	tok := New(DefaultMinLen, DefaultMaxLen)
	got := tok.Tokenize([]byte("Hello, World! This is Usenet."))
	texts := textsOf(got)
	assert.Equal(t, []string{"hello", "world", "this", "usenet"}, texts)
}

func TestTokenizeDropsShortWords(t *testing.T) {
	tok := New(DefaultMinLen, DefaultMaxLen)
	got := tok.Tokenize([]byte("a an to cat dog"))
	// "a", "an", "to" are all length <= 2 and must be dropped; "cat"/"dog"
	// are length 3, strictly > 2, so they survive (spec.md §4.C1: "strictly
	// greater than 2").
	assert.Equal(t, []string{"cat", "dog"}, textsOf(got))
}

func TestTokenizeTrimsLeadingTrailingUnderscores(t *testing.T) {
	tok := New(DefaultMinLen, DefaultMaxLen)
	got := tok.Tokenize([]byte("__hello__ _world_"))
	require.Len(t, got, 2)
	assert.Equal(t, "hello", got[0].Text)
	assert.Equal(t, "world", got[1].Text)
}

func TestTokenizeDropsWhenTrimmedLengthNotOverTwo(t *testing.T) {
	tok := New(DefaultMinLen, DefaultMaxLen)
	// "__ab__" pre-trim length 6 (within bounds) but trims to "ab", length
	// 2 -- not strictly greater than 2, so it must be dropped.
	got := tok.Tokenize([]byte("__ab__ __abc__"))
	assert.Equal(t, []string{"abc"}, textsOf(got))
}

func TestTokenizePreTrimBoundsRejectOutOfRangeTokens(t *testing.T) {
	tok := New(4, 6)
	// "cat" (len 3) is below MinLen=4 and must be dropped even though its
	// trimmed length would be > 2.
	got := tok.Tokenize([]byte("cat camel caterpillarosaurus"))
	texts := textsOf(got)
	assert.NotContains(t, texts, "cat")
	assert.Contains(t, texts, "camel")
	assert.NotContains(t, texts, "caterpillarosaurus")
}

func TestTokenizeByteExactAtIndexAndQueryTime(t *testing.T) {
	tok := New(DefaultMinLen, DefaultMaxLen)
	a := tok.Tokenize([]byte("Hello"))
	b := tok.Tokenize([]byte("hello"))
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].Text, b[0].Text)
}

func TestTokenizeUnicodeWordRuns(t *testing.T) {
	tok := New(DefaultMinLen, DefaultMaxLen)
	got := tok.Tokenize([]byte("café naïve"))
	assert.Equal(t, []string{"café", "naïve"}, textsOf(got))
}

func TestTokenizeOffsetsPointAtTokenStart(t *testing.T) {
	tok := New(DefaultMinLen, DefaultMaxLen)
	got := tok.Tokenize([]byte("xx hello"))
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Offset)
}

func TestTokenizeEmptyInput(t *testing.T) {
	tok := New(DefaultMinLen, DefaultMaxLen)
	got := tok.Tokenize([]byte(""))
	assert.Empty(t, got)
}

func textsOf(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}
