package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_RoundTrip(t *testing.T) {
	list := StringList{"madlan", "ita"}
	val, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["madlan","ita"]`, val)

	var got StringList
	require.NoError(t, got.Scan(val))
	assert.Equal(t, list, got)
}

func TestStringList_NilAndEmpty(t *testing.T) {
	var list StringList
	val, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", val)

	var got StringList
	require.NoError(t, got.Scan(nil))
	assert.Nil(t, got)

	assert.Error(t, got.Scan(42))
}

func TestMetadata_RoundTrip(t *testing.T) {
	meta := Metadata{"url": "https://example.com", "completion_year": float64(2026)}
	val, err := meta.Value()
	require.NoError(t, err)

	var got Metadata
	require.NoError(t, got.Scan(val))
	assert.Equal(t, meta, got)
}

func TestMetadata_Nil(t *testing.T) {
	var meta Metadata
	val, err := meta.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", val)
}
