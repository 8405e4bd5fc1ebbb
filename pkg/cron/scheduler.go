// Package cron runs scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finsight/finsight/internal/domain/summary"
	"github.com/finsight/finsight/internal/domain/transactions"
)

// Scheduler periodically snapshots the computed financial summary so users
// keep a daily history even though the store only holds current state.
type Scheduler struct {
	cron     *cron.Cron
	store    *transactions.Store
	dir      string
	schedule string
	logger   *slog.Logger
}

// NewScheduler creates a snapshot scheduler writing into dir on the given
// cron schedule (standard 5-field format).
func NewScheduler(store *transactions.Store, dir, schedule string, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))
	return &Scheduler{
		cron:     c,
		store:    store,
		dir:      dir,
		schedule: schedule,
		logger:   logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.snapshotSummary); err != nil {
		return fmt.Errorf("registering snapshot job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.String("schedule", s.schedule),
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers a snapshot.
func (s *Scheduler) RunNow() {
	go s.snapshotSummary()
}

func (s *Scheduler) snapshotSummary() {
	now := time.Now()
	txs := s.store.All()
	sum := summary.Compute(txs, s.store.DebitCardBalance(), now)

	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		s.logger.Error("encoding summary snapshot", slog.Any("error", err))
		return
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("creating snapshot directory", slog.Any("error", err))
		return
	}
	path := filepath.Join(s.dir, fmt.Sprintf("summary-%s.json", now.Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("writing summary snapshot", slog.String("path", path), slog.Any("error", err))
		return
	}

	s.logger.Info("summary snapshot written",
		slog.String("path", path),
		slog.Int("transactions", len(txs)),
	)
}
