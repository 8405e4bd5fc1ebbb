// Package categorize assigns a category to a transaction by scoring keyword
// rules against its description.
package categorize

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/finsight/finsight/internal/domain/transactions"
)

const (
	wholeWordScore = 3
	substringScore = 1
)

// Categorizer scores descriptions against a fixed rule set. A single
// Aho-Corasick pass finds which keywords occur at all; only those hits are
// then graded for whole-word matches. Safe for concurrent use.
type Categorizer struct {
	rules    []Rule
	matcher  *ahocorasick.Matcher
	keywords []string // unique lowercased patterns, parallel to matcher
	owners   [][]int  // keyword index -> every rule index sharing it
	wordRe   []*regexp.Regexp
}

// New builds a categorizer from the default rules plus any custom overrides.
// Custom rules participate in the same scoring, appended after the defaults;
// equal score-times-priority products resolve toward the earlier rule. The
// matcher holds each keyword once, so rules sharing a keyword all score when
// it occurs.
func New(custom ...Rule) *Categorizer {
	rules := make([]Rule, 0, len(defaultRules)+len(custom))
	rules = append(rules, defaultRules...)
	rules = append(rules, custom...)

	c := &Categorizer{rules: rules}
	seen := make(map[string]int)
	for ri, r := range rules {
		for _, kw := range r.Keywords {
			kw = strings.ToLower(kw)
			ki, ok := seen[kw]
			if !ok {
				ki = len(c.keywords)
				seen[kw] = ki
				c.keywords = append(c.keywords, kw)
				c.owners = append(c.owners, nil)
				c.wordRe = append(c.wordRe, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
			}
			c.owners[ki] = append(c.owners[ki], ri)
		}
	}
	c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	return c
}

// Categorize returns the best category for a description of the given type,
// falling back to the type's default when no rule keyword occurs.
func (c *Categorizer) Categorize(t transactions.Type, description string) string {
	lower := strings.ToLower(description)

	scores := make(map[int]int)
	for _, ki := range c.matcher.MatchThreadSafe([]byte(lower)) {
		points := substringScore
		if c.wordRe[ki].MatchString(description) {
			points = wholeWordScore
		}
		for _, ri := range c.owners[ki] {
			if c.rules[ri].Type == t {
				scores[ri] += points
			}
		}
	}

	best, bestProduct := -1, 0
	for ri := range c.rules {
		s, ok := scores[ri]
		if !ok {
			continue
		}
		if product := s * c.rules[ri].Priority; product > bestProduct {
			best, bestProduct = ri, product
		}
	}
	if best >= 0 {
		return c.rules[best].Category
	}
	if t == transactions.TypeIncome {
		return transactions.CategoryOtherIncome
	}
	return transactions.CategoryOther
}
