// Package parser turns raw file contents into validated transactions. Each
// file format has its own entry point; plain statement text runs the full
// cleanup, strategy extraction, and classification pipeline.
package parser

import (
	"errors"
	"log/slog"

	"github.com/finsight/finsight/internal/domain/categorize"
	"github.com/finsight/finsight/internal/domain/extract/bank"
	"github.com/finsight/finsight/internal/domain/extract/textclean"
	"github.com/finsight/finsight/internal/domain/transactions"
)

var ErrNoTransactions = errors.New("no transactions found in file")

// strategyConfidence grades how trustworthy each extraction strategy is.
// Structured matches rank high; the token scavenger barely clears half.
var strategyConfidence = map[string]float64{
	"tabular":   0.95,
	"formatted": 0.90,
	"advanced":  0.80,
	"fallback":  0.60,
	"numeric":   0.40,
}

// Parser converts extracted statement content into transactions.
type Parser struct {
	cleaner     *textclean.Cleaner
	categorizer *categorize.Categorizer
	logger      *slog.Logger
}

func New(categorizer *categorize.Categorizer, logger *slog.Logger) *Parser {
	return &Parser{
		cleaner:     textclean.NewCleaner(nil),
		categorizer: categorizer,
		logger:      logger,
	}
}

// Result reports a parse along with pipeline counters.
type Result struct {
	Transactions []transactions.Transaction
	Bank         bank.Tag
	Candidates   int
	Dropped      int

	// PerStrategy counts candidates by the strategy that produced them.
	// Delimited formats have no strategies and leave it nil.
	PerStrategy map[string]int
}

// ParseText runs the statement-text pipeline: OCR cleanup, bank detection,
// the section-aware strategy walk, then classification into transactions
// with a strict exact-key dedupe across strategies.
func (p *Parser) ParseText(text string) (*Result, error) {
	cleaned := p.cleaner.Clean(text)
	tag := bank.Identify(cleaned)
	entries := bank.Extract(cleaned, tag)

	perStrategy := make(map[string]int, len(entries))
	txs := make([]transactions.Transaction, 0, len(entries))
	for _, entry := range entries {
		cand := entry.Candidate
		perStrategy[cand.Strategy]++
		category := entry.CategoryHint
		if category == "" {
			category = p.categorizer.Categorize(entry.Type, cand.Description)
		}
		tx, err := transactions.New(cand.Date, cand.Description, cand.Amount, entry.Type, category, transactions.SourceUpload)
		if err != nil {
			p.logger.Debug("dropping invalid candidate", "line", cand.Line, "error", err)
			continue
		}
		if conf, ok := strategyConfidence[cand.Strategy]; ok {
			tx.Confidence = &conf
		}
		txs = append(txs, tx)
	}

	before := len(txs)
	txs = transactions.DedupeStrict(txs)
	result := &Result{
		Transactions: txs,
		Bank:         tag,
		Candidates:   len(entries),
		Dropped:      before - len(txs),
		PerStrategy:  perStrategy,
	}
	if len(txs) == 0 {
		return result, ErrNoTransactions
	}
	p.logger.Info("parsed statement text",
		"bank", tag, "candidates", len(entries), "transactions", len(txs), "deduped", result.Dropped)
	return result, nil
}
