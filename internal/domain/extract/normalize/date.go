package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slashDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?$`)
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// monthDayLayouts cover textual forms like "Mar 5, 2024" and "March 5 2024".
var monthDayLayouts = []string{
	"Jan 2, 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// fallbackLayouts are tried last, for exports that carry full timestamps.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-2006",
	"02.01.2006",
}

// ParseDate converts a raw date token to a calendar date. Tried in order:
// MM/DD/YYYY (two-digit years pivoted at 50), YYYY-MM-DD, DD/MM/YYYY,
// textual month forms, then generic fallback layouts. An MM/DD fragment
// with no year, common on card statements, is pinned to the current year.
func ParseDate(raw string) (time.Time, bool) {
	return parseDateAt(raw, time.Now())
}

// parseDateAt exists so tests can fix the reference year for MM/DD fragments.
func parseDateAt(raw string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if m := slashDateRe.FindStringSubmatch(s); m != nil {
		first, _ := strconv.Atoi(m[1])
		second, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year = expandYear(m[3], now)
		}

		// MM/DD/YYYY first; swap to DD/MM/YYYY when the first component
		// cannot be a month.
		if t, ok := makeDate(year, first, second); ok {
			return t, true
		}
		if t, ok := makeDate(year, second, first); ok {
			return t, true
		}
		return time.Time{}, false
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return makeDate(year, month, day)
	}

	for _, layout := range monthDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// expandYear applies the two-digit year pivot: values above 50 belong to
// the previous century.
func expandYear(s string, now time.Time) int {
	year, _ := strconv.Atoi(s)
	if len(s) > 2 {
		return year
	}
	century := now.Year() / 100 * 100
	if year > 50 {
		return century - 100 + year
	}
	return century + year
}

// makeDate validates the calendar date instead of letting time.Date
// normalize out-of-range components into a different day.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2200 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
