package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight/internal/domain/transactions"
)

type memoryBackend struct {
	data []byte
}

func (m *memoryBackend) Load(ctx context.Context) ([]byte, error) { return m.data, nil }
func (m *memoryBackend) Save(ctx context.Context, data []byte) error {
	m.data = data
	return nil
}

type fixedCategorizer struct{}

func (fixedCategorizer) Categorize(t transactions.Type, description string) string {
	if t == transactions.TypeIncome {
		return transactions.CategoryOtherIncome
	}
	return transactions.CategoryOther
}

func TestSnapshotSummary(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	store, err := transactions.NewStore(context.Background(), &memoryBackend{}, fixedCategorizer{}, logger)
	require.NoError(t, err)

	tx, err := transactions.New(time.Now(), "COFFEE SHOP", -4.50,
		transactions.TypeExpense, transactions.CategoryOther, transactions.SourceManual)
	require.NoError(t, err)
	_, _, err = store.AddTransactions(context.Background(), []transactions.Transaction{tx})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "snapshots")
	s := NewScheduler(store, dir, "0 3 * * *", logger)
	s.snapshotSummary()

	path := filepath.Join(dir, fmt.Sprintf("summary-%s.json", time.Now().Format("2006-01-02")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap map[string]any
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.InDelta(t, 4.50, snap["totalExpenses"], 0.001)
	assert.Contains(t, snap, "spendingTrend")
}

func TestStartRejectsBadSchedule(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	store, err := transactions.NewStore(context.Background(), &memoryBackend{}, fixedCategorizer{}, logger)
	require.NoError(t, err)

	s := NewScheduler(store, t.TempDir(), "not a schedule", logger)
	assert.Error(t, s.Start())

	s = NewScheduler(store, t.TempDir(), "0 3 * * *", logger)
	require.NoError(t, s.Start())
	<-s.Stop().Done()
}
