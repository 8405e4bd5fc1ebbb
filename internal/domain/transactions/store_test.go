package transactions

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBackend keeps the persisted document in memory for tests.
type memoryBackend struct {
	data  []byte
	saves int
}

func (m *memoryBackend) Load(context.Context) ([]byte, error) { return m.data, nil }

func (m *memoryBackend) Save(_ context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// keywordCategorizer is a trivial stand-in for the real rule engine.
type keywordCategorizer struct{}

func (keywordCategorizer) Categorize(t Type, description string) string {
	if t == TypeIncome {
		return CategoryOtherIncome
	}
	if strings.Contains(strings.ToLower(description), "coffee") {
		return "Food & Dining"
	}
	return CategoryOther
}

func newTestStore(t *testing.T) (*Store, *memoryBackend) {
	t.Helper()
	backend := &memoryBackend{}
	store, err := NewStore(context.Background(), backend, keywordCategorizer{}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return store, backend
}

func TestStore_AddTransactions(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()

	a := mustTx(t, testDate, "STARBUCKS STORE 123 SEATTLE", 5.75)
	b := mustTx(t, testDate, "WHOLE FOODS MARKET", 87.44)

	added, dups, err := store.AddTransactions(ctx, []Transaction{a, b})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, dups)
	assert.Positive(t, backend.saves)

	t.Run("re-upload is deduplicated", func(t *testing.T) {
		again := mustTx(t, testDate, "STARBUCKS STORE 123 SEATTLE", 5.75)
		added, dups, err := store.AddTransactions(ctx, []Transaction{again})
		require.NoError(t, err)
		assert.Equal(t, 0, added)
		assert.Equal(t, 1, dups)
	})

	t.Run("ocr wobble in re-upload is deduplicated", func(t *testing.T) {
		wobble := mustTx(t, testDate, "STARBUCKS STORE 123 SEATTLE WA", 5.75)
		added, dups, err := store.AddTransactions(ctx, []Transaction{wobble})
		require.NoError(t, err)
		assert.Equal(t, 0, added)
		assert.Equal(t, 1, dups)
	})
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()

	tx := mustTx(t, testDate, "GROCERY MART", 52.18)
	_, _, err := store.AddTransactions(ctx, []Transaction{tx})
	require.NoError(t, err)
	require.NoError(t, store.SetDebitCardBalance(ctx, 1234.56))

	reopened, err := NewStore(ctx, backend, keywordCategorizer{}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	all := reopened.All()
	require.Len(t, all, 1)
	assert.Equal(t, tx.ID, all[0].ID)
	assert.Equal(t, "GROCERY MART", all[0].Description)
	assert.True(t, testDate.Equal(all[0].Date))

	balance := reopened.DebitCardBalance()
	require.NotNil(t, balance)
	assert.InDelta(t, 1234.56, *balance, 0.001)
}

func TestStore_All_NewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	old := mustTx(t, testDate, "OLD PURCHASE", 10)
	recent := mustTx(t, testDate.AddDate(0, 1, 0), "RECENT PURCHASE", 20)
	_, _, err := store.AddTransactions(ctx, []Transaction{old, recent})
	require.NoError(t, err)

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "RECENT PURCHASE", all[0].Description)
	assert.Equal(t, "OLD PURCHASE", all[1].Description)
}

func TestStore_UpdateTransaction(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tx := mustTx(t, testDate, "MYSTERY PURCHASE", 15)
	require.NoError(t, store.AddManual(ctx, tx))

	t.Run("description edit re-categorizes", func(t *testing.T) {
		desc := "DOWNTOWN COFFEE ROASTERS"
		updated, err := store.UpdateTransaction(ctx, tx.ID, Update{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Food & Dining", updated.Category)
	})

	t.Run("explicit category wins over re-categorization", func(t *testing.T) {
		desc := "DOWNTOWN COFFEE ROASTERS #2"
		cat := "Entertainment"
		updated, err := store.UpdateTransaction(ctx, tx.ID, Update{Description: &desc, Category: &cat})
		require.NoError(t, err)
		assert.Equal(t, "Entertainment", updated.Category)
	})

	t.Run("type change re-validates category", func(t *testing.T) {
		income := TypeIncome
		updated, err := store.UpdateTransaction(ctx, tx.ID, Update{Type: &income})
		require.NoError(t, err)
		assert.Equal(t, TypeIncome, updated.Type)
		assert.True(t, ValidCategory(TypeIncome, updated.Category))
	})

	t.Run("amount edit keeps signed original in step", func(t *testing.T) {
		debit := mustTx(t, testDate, "CORNER DELI", -5.75)
		require.NoError(t, store.AddManual(ctx, debit))

		amount := 20.0
		updated, err := store.UpdateTransaction(ctx, debit.ID, Update{Amount: &amount})
		require.NoError(t, err)
		assert.InDelta(t, 20.0, updated.Amount, 0.001)
		require.NotNil(t, updated.OriginalAmount)
		assert.InDelta(t, -20.0, *updated.OriginalAmount, 0.001)
	})

	t.Run("invalid edits rejected", func(t *testing.T) {
		bad := -5.0
		_, err := store.UpdateTransaction(ctx, tx.ID, Update{Amount: &bad})
		assert.ErrorIs(t, err, ErrZeroAmount)
	})

	t.Run("unknown id", func(t *testing.T) {
		other := mustTx(t, testDate, "X Y Z", 1)
		_, err := store.UpdateTransaction(ctx, other.ID, Update{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_DeleteTransaction(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tx := mustTx(t, testDate, "TO BE DELETED", 9.99)
	require.NoError(t, store.AddManual(ctx, tx))
	require.NoError(t, store.DeleteTransaction(ctx, tx.ID))
	assert.Empty(t, store.All())
	assert.ErrorIs(t, store.DeleteTransaction(ctx, tx.ID), ErrNotFound)
}

func TestStore_Subscribe(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ch, cancel := store.Subscribe()
	defer cancel()

	require.NoError(t, store.AddManual(ctx, mustTx(t, testDate, "NOTIFY ME", 1)))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a mutation signal")
	}

	t.Run("cancel stops delivery", func(t *testing.T) {
		ch2, cancel2 := store.Subscribe()
		cancel2()
		require.NoError(t, store.AddManual(ctx, mustTx(t, testDate, "AFTER CANCEL", 2)))
		select {
		case <-ch2:
			t.Fatal("cancelled subscriber must not receive")
		default:
		}
	})
}

func TestStore_Search(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	gofakeit.Seed(11)
	var bulk []Transaction
	for i := 0; i < 20; i++ {
		bulk = append(bulk, mustTx(t,
			testDate.AddDate(0, 0, i+1),
			gofakeit.Company()+" PURCHASE",
			float64(i+1)+0.25,
		))
	}
	target := mustTx(t, testDate, "BLUE BOTTLE COFFEE OAKLAND", 4.50)
	bulk = append(bulk, target)

	_, _, err := store.AddTransactions(ctx, bulk)
	require.NoError(t, err)

	t.Run("exact term", func(t *testing.T) {
		res, err := store.Search("coffee", 10)
		require.NoError(t, err)
		require.NotEmpty(t, res)
		assert.Equal(t, target.ID, res[0].ID)
	})

	t.Run("fuzzy term survives a typo", func(t *testing.T) {
		res, err := store.Search("coffe", 10)
		require.NoError(t, err)
		require.NotEmpty(t, res)
		assert.Equal(t, target.ID, res[0].ID)
	})
}
