package strategy

import (
	"strings"
)

// Tabular handles exports that print a real column table: a header line
// names a date and an amount column, and data lines align underneath it.
// Column boundaries are taken from the header and reused for every row.
type Tabular struct{}

func (Tabular) Name() string { return "tabular" }

// headerSearchWindow limits how deep into the document the header may sit.
const headerSearchWindow = 20

type column struct {
	label string
	start int
}

func (t Tabular) Extract(lines []string) []Candidate {
	headerIdx, cols := findTableHeader(lines)
	if headerIdx < 0 {
		return nil
	}

	dateCol, descCol, amountCol := classifyColumns(cols)
	if dateCol < 0 || amountCol < 0 {
		return nil
	}

	var out []Candidate
	for off, line := range lines[headerIdx+1:] {
		if ShouldSkip(line) {
			continue
		}
		cells := sliceByColumns(line, cols)
		if len(cells) != len(cols) {
			continue
		}

		desc := ""
		if descCol >= 0 {
			desc = cells[descCol]
		} else {
			// No labeled description column: use everything that is
			// neither the date nor the amount.
			var rest []string
			for i, cell := range cells {
				if i != dateCol && i != amountCol {
					rest = append(rest, cell)
				}
			}
			desc = strings.Join(rest, " ")
		}

		if c, ok := newCandidate(t.Name(), cells[dateCol], desc, cells[amountCol], line, headerIdx+1+off); ok {
			out = append(out, c)
		}
	}
	return out
}

// findTableHeader locates a line within the search window that names both a
// date-like and an amount-like column, and derives column start offsets
// from the gaps between its labels.
func findTableHeader(lines []string) (int, []column) {
	limit := len(lines)
	if limit > headerSearchWindow {
		limit = headerSearchWindow
	}
	for i := 0; i < limit; i++ {
		cols := splitColumns(lines[i])
		if len(cols) < 2 {
			continue
		}
		hasDate, hasAmount := false, false
		for _, c := range cols {
			label := strings.ToLower(c.label)
			if strings.Contains(label, "date") || strings.Contains(label, "posted") {
				hasDate = true
			}
			if strings.Contains(label, "amount") || strings.Contains(label, "debit") ||
				strings.Contains(label, "credit") || strings.Contains(label, "value") {
				hasAmount = true
			}
		}
		if hasDate && hasAmount {
			return i, cols
		}
	}
	return -1, nil
}

func classifyColumns(cols []column) (dateCol, descCol, amountCol int) {
	dateCol, descCol, amountCol = -1, -1, -1
	for i, c := range cols {
		label := strings.ToLower(c.label)
		switch {
		case dateCol < 0 && (strings.Contains(label, "date") || strings.Contains(label, "posted")):
			dateCol = i
		case descCol < 0 && (strings.Contains(label, "desc") || strings.Contains(label, "merchant") ||
			strings.Contains(label, "payee") || strings.Contains(label, "detail") || strings.Contains(label, "memo")):
			descCol = i
		case amountCol < 0 && (strings.Contains(label, "amount") || strings.Contains(label, "debit") ||
			strings.Contains(label, "credit") || strings.Contains(label, "value")):
			amountCol = i
		}
	}
	return dateCol, descCol, amountCol
}

// splitColumns splits a header line on runs of two or more spaces, keeping
// the byte offset where each label starts.
func splitColumns(line string) []column {
	var cols []column
	i := 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) {
			break
		}
		start := i
		for i < len(line) {
			if line[i] == ' ' && i+1 < len(line) && line[i+1] == ' ' {
				break
			}
			if line[i] == '\t' {
				break
			}
			i++
		}
		cols = append(cols, column{label: strings.TrimSpace(line[start:i]), start: start})
	}
	return cols
}

// sliceByColumns cuts a data line at the header's column start offsets.
func sliceByColumns(line string, cols []column) []string {
	cells := make([]string, len(cols))
	for i := range cols {
		start := cols[i].start
		if start > len(line) {
			start = len(line)
		}
		end := len(line)
		if i+1 < len(cols) && cols[i+1].start < end {
			end = cols[i+1].start
		}
		if start > end {
			start = end
		}
		cells[i] = strings.TrimSpace(line[start:end])
	}
	return cells
}
