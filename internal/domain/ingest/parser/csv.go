package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/finsight/finsight/internal/domain/classify"
	"github.com/finsight/finsight/internal/domain/extract/normalize"
	"github.com/finsight/finsight/internal/domain/ingest/sniffer"
	"github.com/finsight/finsight/internal/domain/transactions"
)

// statementRow is one delimited export row. gocsv matches columns by header
// name, so every common bank label gets its own field and coalesce picks
// whichever was populated.
type statementRow struct {
	Date       string `csv:"date"`
	PostedDate string `csv:"posted date"`
	TransDate  string `csv:"transaction date"`

	Description string `csv:"description"`
	Merchant    string `csv:"merchant"`
	Payee       string `csv:"payee"`
	Memo        string `csv:"memo"`
	Details     string `csv:"details"`

	Amount string `csv:"amount"`

	Debit      string `csv:"debit"`
	Withdrawal string `csv:"withdrawal"`
	Credit     string `csv:"credit"`
	Deposit    string `csv:"deposit"`
}

func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ParseCSV sniffs the export layout, strips any metadata preamble, and
// converts each data row into a transaction. Rows missing a parseable date
// or amount are skipped rather than failing the file.
func (p *Parser) ParseCSV(data []byte) (*Result, error) {
	config, err := sniffer.DetectConfig(data)
	if errors.Is(err, sniffer.ErrNoHeadersFound) {
		// Some banks export "csv" files that are really line-printed
		// statements. Give those the full text pipeline.
		p.logger.Info("csv has no usable header row, falling back to text parsing")
		return p.ParseText(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("detecting csv layout: %w", err)
	}

	reader := skipPreamble(data, config.SkipLines)
	// Bank exports capitalize headers inconsistently; tags are lowercase.
	gocsv.SetHeaderNormalizer(func(h string) string {
		return strings.ToLower(strings.TrimSpace(h))
	})
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = config.Delimiter
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		r.FieldsPerRecord = -1
		return r
	})

	var rows []statementRow
	if err := gocsv.Unmarshal(reader, &rows); err != nil {
		return nil, fmt.Errorf("parsing csv rows: %w", err)
	}

	txs := make([]transactions.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, ok := p.rowToTransaction(row)
		if !ok {
			p.logger.Debug("skipping csv row", "row", config.SkipLines+2+i)
			continue
		}
		txs = append(txs, tx)
	}
	txs = transactions.DedupeStrict(txs)
	result := &Result{Transactions: txs, Candidates: len(rows)}
	if len(txs) == 0 {
		return result, ErrNoTransactions
	}
	p.logger.Info("parsed csv", "rows", len(rows), "transactions", len(txs))
	return result, nil
}

func (p *Parser) rowToTransaction(row statementRow) (transactions.Transaction, bool) {
	date, ok := normalize.ParseDate(coalesce(row.Date, row.PostedDate, row.TransDate))
	if !ok {
		return transactions.Transaction{}, false
	}
	desc := coalesce(row.Description, row.Merchant, row.Payee, row.Memo, row.Details)
	if desc == "" {
		return transactions.Transaction{}, false
	}
	if classify.IsCreditCardBillPayment(desc) || classify.IsNonSpendingArtifact(desc) {
		return transactions.Transaction{}, false
	}

	var amount float64
	var txType transactions.Type
	switch {
	case coalesce(row.Debit, row.Withdrawal) != "":
		v, ok := normalize.ParseAmount(coalesce(row.Debit, row.Withdrawal))
		if !ok {
			return transactions.Transaction{}, false
		}
		amount, txType = -v, transactions.TypeExpense
	case coalesce(row.Credit, row.Deposit) != "":
		v, ok := normalize.ParseAmount(coalesce(row.Credit, row.Deposit))
		if !ok {
			return transactions.Transaction{}, false
		}
		amount, txType = v, transactions.TypeIncome
	default:
		v, ok := normalize.ParseAmount(row.Amount)
		if !ok {
			return transactions.Transaction{}, false
		}
		amount = v
		txType = classify.Type(amount, desc)
	}

	category := p.categorizer.Categorize(txType, desc)
	tx, err := transactions.New(date, desc, amount, txType, category, transactions.SourceUpload)
	if err != nil {
		return transactions.Transaction{}, false
	}
	return tx, true
}

// skipPreamble drops metadata lines above the header row.
func skipPreamble(data []byte, n int) io.Reader {
	if n <= 0 {
		return bytes.NewReader(data)
	}
	lines := bytes.SplitN(data, []byte("\n"), n+1)
	return bytes.NewReader(lines[len(lines)-1])
}
