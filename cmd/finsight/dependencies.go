package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/finsight/finsight/internal/domain/categorize"
	"github.com/finsight/finsight/internal/domain/ingest/parser"
	ingestservice "github.com/finsight/finsight/internal/domain/ingest/service"
	"github.com/finsight/finsight/internal/domain/transactions"
	"github.com/finsight/finsight/internal/pdftext"
	"github.com/finsight/finsight/pkg/config"
	"github.com/finsight/finsight/pkg/cron"
	"github.com/finsight/finsight/pkg/metrics"
	"github.com/finsight/finsight/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Store       *transactions.Store
	Categorizer *categorize.Categorizer
	Parser      *parser.Parser
	Extractor   pdftext.Extractor
	Ingest      *ingestservice.Service
	Metrics     *metrics.Pipeline
	Scheduler   *cron.Scheduler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.Categorizer = categorize.New()
	deps.Metrics = metrics.NewPipeline(prometheus.DefaultRegisterer)

	backend, err := storage.NewLocalStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage backend: %w", err)
	}
	store, err := transactions.NewStore(ctx, backend, deps.Categorizer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init transaction store: %w", err)
	}
	deps.Store = store

	deps.Parser = parser.New(deps.Categorizer, logger)
	deps.Extractor = pdftext.NewReader(pdftext.Options{
		MaxPages:       cfg.Extract.MaxPages,
		PerPageTimeout: cfg.Extract.PerPageTimeout,
		PagesPerSecond: cfg.Extract.PagesPerSecond,
	}, logger)

	deps.Ingest = ingestservice.New(
		deps.Parser,
		deps.Extractor,
		deps.Store,
		ingestservice.Limits{MaxBytes: cfg.Upload.MaxBytes},
		deps.Metrics,
		logger,
	)

	snapshotDir := filepath.Join(filepath.Dir(cfg.Store.Path), "snapshots")
	deps.Scheduler = cron.NewScheduler(deps.Store, snapshotDir, cfg.Store.SnapshotSchedule, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}
