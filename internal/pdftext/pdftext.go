// Package pdftext pulls plain text out of PDF statements page by page.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"golang.org/x/time/rate"
)

// Extractor turns a PDF document into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

var (
	ErrNotPDF       = errors.New("data is not a valid pdf document")
	ErrEncryptedPDF = errors.New("pdf is encrypted")
	ErrNoText       = errors.New("pdf contains no extractable text")
)

// Options bound how much work a single document may cost.
type Options struct {
	MaxPages       int
	PerPageTimeout time.Duration
	PagesPerSecond float64
}

// Reader extracts text with a page cap, a per-page timeout, and a rate
// limit so one oversized or hostile upload cannot stall the pipeline.
type Reader struct {
	maxPages    int
	pageTimeout time.Duration
	limiter     *rate.Limiter
	logger      *slog.Logger
}

func NewReader(opts Options, logger *slog.Logger) *Reader {
	if opts.MaxPages <= 0 {
		opts.MaxPages = 50
	}
	if opts.PerPageTimeout <= 0 {
		opts.PerPageTimeout = 10 * time.Second
	}
	if opts.PagesPerSecond <= 0 {
		opts.PagesPerSecond = 5
	}
	return &Reader{
		maxPages:    opts.MaxPages,
		pageTimeout: opts.PerPageTimeout,
		limiter:     rate.NewLimiter(rate.Limit(opts.PagesPerSecond), 1),
		logger:      logger,
	}
}

// Extract reads every page up to the cap and joins their text with page
// breaks. Pages that fail individually are logged and skipped; the document
// only fails when no page yields text.
func (r *Reader) Extract(ctx context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if strings.Contains(err.Error(), "encrypted") {
			return "", ErrEncryptedPDF
		}
		return "", fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	total := reader.NumPage()
	pages := total
	if pages > r.maxPages {
		r.logger.Warn("pdf exceeds page cap, truncating", "pages", total, "cap", r.maxPages)
		pages = r.maxPages
	}

	var sb strings.Builder
	extracted := 0
	for i := 1; i <= pages; i++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := r.extractPage(ctx, page)
		if err != nil {
			r.logger.Warn("skipping unreadable pdf page", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		extracted++
	}
	if extracted == 0 {
		return "", ErrNoText
	}
	r.logger.Debug("extracted pdf text", "pages", extracted, "total", total)
	return sb.String(), nil
}

// extractPage runs text extraction with a deadline. Malformed pages can
// send the decoder into long object walks; the deadline abandons them.
func (r *Reader) extractPage(ctx context.Context, page pdf.Page) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.pageTimeout)
	defer cancel()

	type pageResult struct {
		text string
		err  error
	}
	done := make(chan pageResult, 1)
	go func() {
		text, err := page.GetPlainText(nil)
		done <- pageResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
