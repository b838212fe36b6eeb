package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCents(t *testing.T) {
	t.Parallel()

	require.Equal(t, "11.98", FormatCents(1198))
	require.Equal(t, "0.00", FormatCents(0))
	require.Equal(t, "0.05", FormatCents(5))
	require.Equal(t, "100.00", FormatCents(10000))
	require.Equal(t, "1234567.89", FormatCents(123456789))
}

func TestParseToCents(t *testing.T) {
	t.Parallel()

	cents, err := ParseToCents("19.99")
	require.NoError(t, err)
	require.Equal(t, int64(1999), cents)

	cents, err = ParseToCents("5")
	require.NoError(t, err)
	require.Equal(t, int64(500), cents)

	cents, err = ParseToCents("0.10")
	require.NoError(t, err)
	require.Equal(t, int64(10), cents)
}

func TestParseToCentsRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := ParseToCents("abc")
	require.Error(t, err)

	_, err = ParseToCents("-1.00")
	require.Error(t, err)

	_, err = ParseToCents("1.999")
	require.Error(t, err)
}

func TestFormatParseRoundTrip(t *testing.T) {
	t.Parallel()

	for _, cents := range []int64{0, 1, 99, 100, 1198, 999999} {
		parsed, err := ParseToCents(FormatCents(cents))
		require.NoError(t, err)
		require.Equal(t, cents, parsed)
	}
}
