package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "mobiles:1", MakeKey("mobiles", "1"))
	require.Equal(t, "laptops:mbp14", MakeKey("laptops", "mbp14"))
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	productType, localID, err := ParseKey("laptops:mbp14")
	require.NoError(t, err)
	require.Equal(t, "laptops", productType)
	require.Equal(t, "mbp14", localID)

	// Keys split on the first separator, so local ids may contain colons
	productType, localID, err = ParseKey("home:decor:7")
	require.NoError(t, err)
	require.Equal(t, "home", productType)
	require.Equal(t, "decor:7", localID)
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "mobiles", ":1", "mobiles:", ":"} {
		_, _, err := ParseKey(key)
		require.Error(t, err, "key %q should not parse", key)
	}
}

func TestMakeKeyRoundTrip(t *testing.T) {
	t.Parallel()

	productType, localID, err := ParseKey(MakeKey("books", "go-in-action"))
	require.NoError(t, err)
	require.Equal(t, "books", productType)
	require.Equal(t, "go-in-action", localID)
}
