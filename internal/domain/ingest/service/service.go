// Package service is the upload boundary: it validates a file, routes it to
// the right parser, and ingests the result into the transaction store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/finsight/finsight/internal/domain/ingest/parser"
	"github.com/finsight/finsight/internal/domain/transactions"
	"github.com/finsight/finsight/internal/pdftext"
	"github.com/finsight/finsight/pkg/metrics"
)

// InputError marks problems with the uploaded file itself. Its message is
// safe to show the user verbatim.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

func inputErrorf(format string, args ...any) *InputError {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// ExtractionError marks a file that passed validation but could not be
// turned into transactions. User-facing messages stay under a hundred
// characters; the cause carries the detail for logs.
type ExtractionError struct {
	msg   string
	cause error
}

func (e *ExtractionError) Error() string { return e.msg }
func (e *ExtractionError) Unwrap() error { return e.cause }

func extractionError(msg string, cause error) *ExtractionError {
	if len(msg) > 96 {
		msg = msg[:96] + "..."
	}
	return &ExtractionError{msg: msg, cause: cause}
}

var ErrNoTransactions = parser.ErrNoTransactions

// minExtractedChars is the least text a pdf must yield before the pipeline
// bothers parsing it; anything shorter is a failed extraction.
const minExtractedChars = 100

// Limits bound what a single upload may cost.
type Limits struct {
	MaxBytes int64
}

// Service wires validation, extraction, parsing, and storage together.
type Service struct {
	parser    *parser.Parser
	extractor pdftext.Extractor
	store     *transactions.Store
	limits    Limits
	metrics   *metrics.Pipeline
	tracer    trace.Tracer
	logger    *slog.Logger
}

func New(p *parser.Parser, extractor pdftext.Extractor, store *transactions.Store, limits Limits, m *metrics.Pipeline, logger *slog.Logger) *Service {
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 10 << 20
	}
	return &Service{
		parser:    p,
		extractor: extractor,
		store:     store,
		limits:    limits,
		metrics:   m,
		tracer:    otel.Tracer("finsight/ingest"),
		logger:    logger,
	}
}

// ParseReport summarizes one ingested file.
type ParseReport struct {
	FileName   string `json:"fileName"`
	Format     string `json:"format"`
	Bank       string `json:"bank,omitempty"`
	Added      int    `json:"added"`
	Duplicates int    `json:"duplicates"`
}

// ParseFile validates, parses, and ingests one uploaded file. Supported
// formats are csv, txt, pdf, and xlsx; legacy .xls workbooks are rejected
// with a pointer to re-export.
func (s *Service) ParseFile(ctx context.Context, name string, data []byte) (*ParseReport, error) {
	ctx, span := s.tracer.Start(ctx, "ingest.ParseFile",
		trace.WithAttributes(attribute.String("file.name", name), attribute.Int("file.bytes", len(data))))
	defer span.End()

	format, err := s.validate(name, data)
	if err != nil {
		s.metrics.FilesFailed.WithLabelValues("input").Inc()
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("file.format", format))

	result, err := s.parse(ctx, format, data)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, parser.ErrNoTransactions) {
			s.metrics.FilesFailed.WithLabelValues("empty").Inc()
			return nil, err
		}
		var ie *InputError
		if errors.As(err, &ie) {
			s.metrics.FilesFailed.WithLabelValues("input").Inc()
			return nil, err
		}
		s.metrics.FilesFailed.WithLabelValues("extraction").Inc()
		s.logger.Error("extraction failed", "file", name, "format", format, "error", err)
		return nil, extractionError(fmt.Sprintf("could not read transactions from %s file", format), err)
	}

	for strategyName, count := range result.PerStrategy {
		s.metrics.StrategyCandidates.WithLabelValues(strategyName).Add(float64(count))
	}

	added, duplicates, err := s.store.AddTransactions(ctx, result.Transactions)
	if err != nil {
		return nil, fmt.Errorf("storing transactions: %w", err)
	}
	s.metrics.FilesParsed.WithLabelValues(format).Inc()
	s.metrics.TransactionsKept.Add(float64(added))
	s.metrics.DuplicatesDropped.Add(float64(duplicates + result.Dropped))

	return &ParseReport{
		FileName:   name,
		Format:     format,
		Bank:       string(result.Bank),
		Added:      added,
		Duplicates: duplicates,
	}, nil
}

func (s *Service) validate(name string, data []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if len(data) == 0 {
		return ext, inputErrorf("file %q is empty", name)
	}
	if int64(len(data)) > s.limits.MaxBytes {
		return ext, inputErrorf("file exceeds the %d MB size limit", s.limits.MaxBytes>>20)
	}
	switch ext {
	case "csv", "txt", "pdf", "xlsx":
		return ext, nil
	case "xls":
		return ext, inputErrorf("legacy .xls workbooks are not supported, re-export as .xlsx or .csv")
	default:
		return ext, inputErrorf("unsupported file type %q, expected csv, txt, pdf, or xlsx", ext)
	}
}

func (s *Service) parse(ctx context.Context, format string, data []byte) (*parser.Result, error) {
	switch format {
	case "csv":
		return s.parser.ParseCSV(data)
	case "xlsx":
		return s.parser.ParseXLSX(data)
	case "txt":
		return s.parser.ParseText(string(data))
	case "pdf":
		text, err := s.extractor.Extract(ctx, data)
		if err != nil {
			switch {
			case errors.Is(err, pdftext.ErrEncryptedPDF):
				return nil, inputErrorf("pdf is password protected, remove the password and retry")
			case errors.Is(err, pdftext.ErrNotPDF):
				return nil, inputErrorf("file is not a readable pdf")
			case errors.Is(err, pdftext.ErrNoText):
				return nil, inputErrorf("pdf has no extractable text, it may be a scanned image")
			}
			return nil, err
		}
		if len(strings.TrimSpace(text)) < minExtractedChars {
			return nil, fmt.Errorf("pdf text extraction yielded only %d characters", len(strings.TrimSpace(text)))
		}
		return s.parser.ParseText(text)
	default:
		return nil, inputErrorf("unsupported file type %q", format)
	}
}
