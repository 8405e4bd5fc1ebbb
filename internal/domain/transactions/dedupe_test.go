package transactions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTx(t *testing.T, date time.Time, desc string, amount float64) Transaction {
	t.Helper()
	tx, err := New(date, desc, amount, TypeExpense, CategoryOther, SourceUpload)
	require.NoError(t, err)
	return tx
}

func TestDedupeStrict(t *testing.T) {
	a := mustTx(t, testDate, "STARBUCKS STORE", 5.75)
	b := mustTx(t, testDate, "STARBUCKS STORE", 5.75)
	c := mustTx(t, testDate, "STARBUCKS STORE", 6.75)

	out := DedupeStrict([]Transaction{a, b, c})
	require.Len(t, out, 2)
	assert.Equal(t, a.ID, out[0].ID)
	assert.Equal(t, c.ID, out[1].ID)

	t.Run("description difference keeps both", func(t *testing.T) {
		d := mustTx(t, testDate, "STARBUCKS STORE #12", 5.75)
		out := DedupeStrict([]Transaction{a, d})
		assert.Len(t, out, 2)
	})
}

func TestIsIngestDuplicate(t *testing.T) {
	base := mustTx(t, testDate, "STARBUCKS STORE 123 SEATTLE WA", 5.75)

	t.Run("identical is duplicate", func(t *testing.T) {
		other := mustTx(t, testDate, "STARBUCKS STORE 123 SEATTLE WA", 5.75)
		assert.True(t, IsIngestDuplicate(other, base))
	})

	t.Run("small ocr wobble is still duplicate", func(t *testing.T) {
		// Short words drop out, so the extra token leaves four of five
		// significant words shared: similarity exactly 0.80.
		other := mustTx(t, testDate, "STARBUCKS STORE 123 SEATTLE WA USA", 5.75)
		assert.True(t, IsIngestDuplicate(other, base))
	})

	t.Run("posting date one day off is duplicate", func(t *testing.T) {
		other := mustTx(t, testDate.AddDate(0, 0, 1), "STARBUCKS STORE 123 SEATTLE WA", 5.75)
		assert.True(t, IsIngestDuplicate(other, base))
	})

	t.Run("two days apart is not duplicate", func(t *testing.T) {
		other := mustTx(t, testDate.AddDate(0, 0, 2), "STARBUCKS STORE 123 SEATTLE WA", 5.75)
		assert.False(t, IsIngestDuplicate(other, base))
	})

	t.Run("one cent apart is duplicate", func(t *testing.T) {
		other := mustTx(t, testDate, "STARBUCKS STORE 123 SEATTLE WA", 5.76)
		assert.True(t, IsIngestDuplicate(other, base))
	})

	t.Run("different amount is not duplicate", func(t *testing.T) {
		other := mustTx(t, testDate, "STARBUCKS STORE 123 SEATTLE WA", 6.75)
		assert.False(t, IsIngestDuplicate(other, base))
	})

	t.Run("unrelated description is not duplicate", func(t *testing.T) {
		other := mustTx(t, testDate, "WHOLE FOODS MARKET", 5.75)
		assert.False(t, IsIngestDuplicate(other, base))
	})
}
