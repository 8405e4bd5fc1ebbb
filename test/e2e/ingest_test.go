// Package e2etest runs statement fixtures through the full ingest flow:
// extraction, classification, categorization, storage, and aggregation.
package e2etest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight/internal/domain/categorize"
	"github.com/finsight/finsight/internal/domain/ingest/parser"
	"github.com/finsight/finsight/internal/domain/ingest/service"
	"github.com/finsight/finsight/internal/domain/summary"
	"github.com/finsight/finsight/internal/domain/transactions"
	"github.com/finsight/finsight/internal/pdftext"
	"github.com/finsight/finsight/pkg/metrics"
	"github.com/finsight/finsight/pkg/storage"
)

const testDataDir = "testdata"

func newPipeline(t *testing.T) (*service.Service, *transactions.Store) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	cat := categorize.New()

	backend, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	store, err := transactions.NewStore(context.Background(), backend, cat, logger)
	require.NoError(t, err)

	svc := service.New(
		parser.New(cat, logger),
		pdftext.NewReader(pdftext.Options{}, logger),
		store,
		service.Limits{},
		metrics.NewPipeline(prometheus.NewRegistry()),
		logger,
	)
	return svc, store
}

// TestCardStatementIngest runs an OCR'd Bank of America card statement
// through the text pipeline and checks the resulting financial picture.
func TestCardStatementIngest(t *testing.T) {
	path := filepath.Join(testDataDir, "boa_statement.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	svc, store := newPipeline(t)
	report, err := svc.ParseFile(context.Background(), path, data)
	require.NoError(t, err)

	t.Run("report", func(t *testing.T) {
		assert.Equal(t, "txt", report.Format)
		assert.Equal(t, "bank_of_america", report.Bank)
		assert.Equal(t, 4, report.Added, "three purchases plus one refund; the bill payment is dropped")
	})

	t.Run("stored transactions", func(t *testing.T) {
		byCategory := make(map[string]transactions.Transaction)
		for _, tx := range store.All() {
			byCategory[tx.Category] = tx
		}

		refund, ok := byCategory[transactions.CategoryRefunds]
		require.True(t, ok)
		assert.Equal(t, transactions.TypeIncome, refund.Type)
		assert.InDelta(t, 25.00, refund.Amount, 0.001)

		shopping, ok := byCategory["Shopping"]
		require.True(t, ok)
		assert.Contains(t, shopping.Description, "FABLETICS", "OCR garble is repaired before categorization")

		_, ok = byCategory["Gas & Fuel"]
		assert.True(t, ok)
	})

	t.Run("summary", func(t *testing.T) {
		sum := summary.Compute(store.All(), nil, time.Now())
		assert.InDelta(t, 0, sum.TotalIncome, 0.001, "refunds are not income")
		assert.InDelta(t, 51.06, sum.TotalExpenses, 0.001, "refund offsets net expenses")
		assert.InDelta(t, 101.06, sum.TotalSpending, 0.001, "refund counts toward gross turnover")
	})
}

// TestCheckingExportIngest imports a double-entry CSV export with a metadata
// preamble, then re-imports it to confirm idempotence.
func TestCheckingExportIngest(t *testing.T) {
	path := filepath.Join(testDataDir, "checking_export.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	svc, store := newPipeline(t)
	report, err := svc.ParseFile(context.Background(), path, data)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Added)

	t.Run("classification", func(t *testing.T) {
		var income, expenses int
		for _, tx := range store.All() {
			switch tx.Type {
			case transactions.TypeIncome:
				income++
			case transactions.TypeExpense:
				expenses++
			}
		}
		assert.Equal(t, 1, income)
		assert.Equal(t, 3, expenses)
	})

	t.Run("reimport is idempotent", func(t *testing.T) {
		report, err := svc.ParseFile(context.Background(), path, data)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Added)
		assert.Equal(t, 4, report.Duplicates)
		assert.Len(t, store.All(), 4)
	})
}
