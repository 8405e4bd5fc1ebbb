// Package sniffer detects the shape of delimited statement exports: which
// delimiter the file uses, where the header row sits below any metadata
// preamble, and which columns carry the date, description, and amounts.
package sniffer

import (
	"encoding/csv"
	"errors"
	"strings"
)

var headerKeywords = []string{
	"date", "posted", "description", "merchant", "payee", "memo",
	"amount", "debit", "credit", "withdrawal", "deposit", "balance",
	"category", "type", "check",
}

var (
	ErrEmptyFile        = errors.New("file is empty")
	ErrNoHeadersFound   = errors.New("could not find data headers")
	ErrInvalidDelimiter = errors.New("could not detect valid delimiter")
)

// FileConfig is the detected layout of a delimited file.
type FileConfig struct {
	Delimiter rune
	SkipLines int // metadata lines before the header row
	Headers   []string
}

// Columns maps statement fields to header indices. -1 means absent.
type Columns struct {
	Date        int
	Description int
	Amount      int
	Debit       int
	Credit      int

	// DoubleEntry is set when debits and credits print in separate columns,
	// the usual checking-account export shape.
	DoubleEntry bool
}

// DetectConfig finds the delimiter and header row of a CSV or TSV export.
// Banks often prepend account metadata above the real header, so the first
// 20 lines are scored for header keywords and column counts.
func DetectConfig(data []byte) (*FileConfig, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	lines := strings.Split(string(data), "\n")

	delimiter, skip, err := findHeaderRow(lines)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(cleanLine(lines[skip], skip == 0)))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	headers, err := reader.Read()
	if err != nil {
		return nil, ErrNoHeadersFound
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	return &FileConfig{Delimiter: delimiter, SkipLines: skip, Headers: headers}, nil
}

// SuggestColumns matches header names to statement fields.
func SuggestColumns(headers []string) Columns {
	cols := Columns{Date: -1, Description: -1, Amount: -1, Debit: -1, Credit: -1}
	for i, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		switch {
		case cols.Date == -1 && (strings.Contains(h, "date") || strings.Contains(h, "posted")):
			cols.Date = i
		case cols.Description == -1 && (strings.Contains(h, "descri") || strings.Contains(h, "merchant") ||
			strings.Contains(h, "payee") || strings.Contains(h, "memo") || h == "name"):
			cols.Description = i
		case cols.Debit == -1 && (strings.Contains(h, "debit") || strings.Contains(h, "withdrawal")):
			cols.Debit = i
		case cols.Credit == -1 && (strings.Contains(h, "credit") || strings.Contains(h, "deposit")):
			cols.Credit = i
		case cols.Amount == -1 && strings.Contains(h, "amount"):
			cols.Amount = i
		}
	}
	cols.DoubleEntry = cols.Debit != -1 && cols.Credit != -1
	return cols
}

func findHeaderRow(lines []string) (rune, int, error) {
	keywordIdx, fallbackIdx := -1, -1
	var keywordDelim, fallbackDelim rune
	keywordScore, fallbackCount := 0, 0

	for i, line := range lines {
		if i > 20 {
			break
		}
		line = cleanLine(line, i == 0)
		if line == "" {
			continue
		}
		delimiter, count := detectDelimiter(line)
		if count < 1 {
			continue
		}

		lower := strings.ToLower(line)
		matches := 0
		for _, kw := range headerKeywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches > 0 {
			// Real headers have many columns; metadata preambles have few.
			if score := count*10 + matches; score > keywordScore {
				keywordScore = score
				keywordDelim = delimiter
				keywordIdx = i
			}
		} else if count > fallbackCount {
			fallbackCount = count
			fallbackDelim = delimiter
			fallbackIdx = i
		}
	}

	if keywordIdx >= 0 {
		return keywordDelim, keywordIdx, nil
	}
	if fallbackCount >= 2 {
		return fallbackDelim, fallbackIdx, nil
	}
	return 0, 0, ErrNoHeadersFound
}

func cleanLine(line string, first bool) string {
	line = strings.TrimRight(line, "\r")
	if first {
		line = strings.TrimPrefix(line, "\uFEFF")
	}
	return strings.TrimSpace(line)
}

func detectDelimiter(line string) (rune, int) {
	best, bestCount := rune(0), 0
	for _, d := range []rune{';', '\t', ',', '|'} {
		if count := strings.Count(line, string(d)); count > bestCount {
			best, bestCount = d, count
		}
	}
	return best, bestCount
}
