package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryPlainTerms(t *testing.T) {
	got := ParseQuery("hello world", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "hello", got[0].Text)
	assert.Equal(t, "world", got[1].Text)
	assert.False(t, got[0].Strict)
}

func TestParseQuerySetLogicMust(t *testing.T) {
	got := ParseQuery("+hello world", SetLogic)
	require.Len(t, got, 2)
	assert.True(t, got[0].Must)
	assert.True(t, got[0].Strict)
	assert.Equal(t, "hello", got[0].Text)
}

func TestParseQuerySetLogicCant(t *testing.T) {
	got := ParseQuery("ham -spam", SetLogic)
	require.Len(t, got, 2)
	assert.True(t, got[1].Cant)
	assert.Equal(t, "spam", got[1].Text)
}

func TestParseQuerySetLogicIgnoredWithoutFlag(t *testing.T) {
	got := ParseQuery("+hello -world", 0)
	require.Len(t, got, 2)
	assert.False(t, got[0].Must)
	assert.Equal(t, "+hello", got[0].Text)
	assert.False(t, got[1].Cant)
	assert.Equal(t, "-world", got[1].Text)
}

func TestParseQueryHeaderPrefix(t *testing.T) {
	got := ParseQuery("hdr:linux", 0)
	require.Len(t, got, 1)
	assert.True(t, got[0].Header)
	assert.Equal(t, "linux", got[0].Text)
}

func TestParseQueryQuotedStrict(t *testing.T) {
	got := ParseQuery(`"hello"`, 0)
	require.Len(t, got, 1)
	assert.True(t, got[0].Strict)
	assert.Equal(t, "hello", got[0].Text)
}

func TestParseQueryMustWithHeader(t *testing.T) {
	got := ParseQuery("+hdr:linux", SetLogic)
	require.Len(t, got, 1)
	assert.True(t, got[0].Must)
	assert.True(t, got[0].Header)
	assert.Equal(t, "linux", got[0].Text)
}

func TestParseQueryEmpty(t *testing.T) {
	got := ParseQuery("   ", 0)
	assert.Empty(t, got)
}

func TestParseQuerySingleCharSetLogicTokenNotModified(t *testing.T) {
	// len(tok) > 1 is required before '+'/'-' stripping applies.
	got := ParseQuery("+ -", SetLogic)
	// Both tokens are length 1, so neither triggers the must/cant path;
	// they pass through as literal single-character terms.
	require.Len(t, got, 2)
	assert.False(t, got[0].Must)
	assert.False(t, got[1].Cant)
}
