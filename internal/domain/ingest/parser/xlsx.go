package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/finsight/finsight/internal/domain/ingest/sniffer"
	"github.com/finsight/finsight/internal/domain/transactions"
)

// ParseXLSX flattens the first populated sheet into rows and runs the same
// column mapping CSV exports go through. Only the modern zip-based .xlsx
// container is supported; legacy .xls files fail at open.
func (p *Parser) ParseXLSX(data []byte) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var rows [][]string
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			p.logger.Warn("skipping unreadable sheet", "sheet", sheet, "error", err)
			continue
		}
		if len(sheetRows) > 1 {
			rows = sheetRows
			break
		}
	}
	if len(rows) == 0 {
		return nil, ErrNoTransactions
	}

	headerIdx, cols := findSheetHeader(rows)
	if headerIdx < 0 {
		return nil, sniffer.ErrNoHeadersFound
	}

	txs := make([]transactions.Transaction, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		tx, ok := p.rowToTransaction(mapSheetRow(row, cols))
		if !ok {
			continue
		}
		txs = append(txs, tx)
	}
	txs = transactions.DedupeStrict(txs)
	result := &Result{Transactions: txs, Candidates: len(rows) - headerIdx - 1}
	if len(txs) == 0 {
		return result, ErrNoTransactions
	}
	p.logger.Info("parsed workbook", "rows", result.Candidates, "transactions", len(txs))
	return result, nil
}

// findSheetHeader locates the first row whose cells map to at least a date
// and one amount-bearing column.
func findSheetHeader(rows [][]string) (int, sniffer.Columns) {
	limit := len(rows)
	if limit > 20 {
		limit = 20
	}
	for i := 0; i < limit; i++ {
		cols := sniffer.SuggestColumns(rows[i])
		if cols.Date >= 0 && (cols.Amount >= 0 || cols.DoubleEntry) {
			return i, cols
		}
	}
	return -1, sniffer.Columns{}
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func mapSheetRow(row []string, cols sniffer.Columns) statementRow {
	return statementRow{
		Date:        cellAt(row, cols.Date),
		Description: cellAt(row, cols.Description),
		Amount:      cellAt(row, cols.Amount),
		Debit:       cellAt(row, cols.Debit),
		Credit:      cellAt(row, cols.Credit),
	}
}
