package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func mustParseAt(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, ok := parseDateAt(raw, testNow)
	require.True(t, ok, "raw=%q", raw)
	return parsed
}

func TestParseDate(t *testing.T) {
	t.Run("us slash date", func(t *testing.T) {
		d := mustParseAt(t, "03/15/2024")
		assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("two digit year below pivot", func(t *testing.T) {
		d := mustParseAt(t, "03/15/24")
		assert.Equal(t, 2024, d.Year())
	})

	t.Run("two digit year above pivot is previous century", func(t *testing.T) {
		d := mustParseAt(t, "03/15/99")
		assert.Equal(t, 1999, d.Year())
	})

	t.Run("month day fragment pinned to current year", func(t *testing.T) {
		d := mustParseAt(t, "06/03")
		assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("day first swap when month is impossible", func(t *testing.T) {
		d := mustParseAt(t, "25/03/2024")
		assert.Equal(t, time.Date(2024, time.March, 25, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("iso date", func(t *testing.T) {
		d := mustParseAt(t, "2024-03-15")
		assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("textual month", func(t *testing.T) {
		d := mustParseAt(t, "Mar 15, 2024")
		assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("invalid calendar day is rejected", func(t *testing.T) {
		_, ok := parseDateAt("02/30/2024", testNow)
		assert.False(t, ok)
		_, ok = parseDateAt("13/32/2024", testNow)
		assert.False(t, ok)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		for _, raw := range []string{"", "not a date", "99/99/99", "2024"} {
			_, ok := parseDateAt(raw, testNow)
			assert.False(t, ok, "raw=%q", raw)
		}
	})
}
