// Command finsight ingests bank and credit card statements into a local
// transaction store and reports on the result.
//
// Usage:
//
//	finsight parse <file>...      parse statements into the store
//	finsight list                 print stored transactions, newest first
//	finsight summary              print the aggregated financial summary
//	finsight search <query>       full-text search over descriptions
//	finsight set-balance <value>  record the checking account balance
//	finsight serve                run the snapshot scheduler and metrics endpoint
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finsight/finsight/internal/domain/summary"
	"github.com/finsight/finsight/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func logLevel() slog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func run(logger *slog.Logger) error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: finsight <parse|list|summary|search|set-balance|serve> [args]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()
	deps, err := InitDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "parse":
		return runParse(ctx, deps, args)
	case "list":
		return runList(deps)
	case "summary":
		return runSummary(deps)
	case "search":
		return runSearch(deps, args)
	case "set-balance":
		return runSetBalance(ctx, deps, args)
	case "serve":
		return runServe(ctx, deps)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runParse(ctx context.Context, deps *Dependencies, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("usage: finsight parse <file>...")
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		report, err := deps.Ingest.ParseFile(ctx, path, data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: added %d transactions (%d duplicates skipped)", path, report.Added, report.Duplicates)
		if report.Bank != "" && report.Bank != "generic" {
			fmt.Printf(" [%s]", report.Bank)
		}
		fmt.Println()
	}
	return nil
}

func runList(deps *Dependencies) error {
	for _, tx := range deps.Store.All() {
		sign := "-"
		if tx.Type == "income" {
			sign = "+"
		}
		fmt.Printf("%s  %s%9.2f  %-20s  %s\n",
			tx.Date.Format("2006-01-02"), sign, tx.Amount, tx.Category, tx.Description)
	}
	return nil
}

func runSummary(deps *Dependencies) error {
	sum := summary.Compute(deps.Store.All(), deps.Store.DebitCardBalance(), time.Now())
	out, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runSearch(deps *Dependencies, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: finsight search <query>")
	}
	results, err := deps.Store.Search(args[0], 25)
	if err != nil {
		return err
	}
	for _, tx := range results {
		fmt.Printf("%s  %9.2f  %-20s  %s\n",
			tx.Date.Format("2006-01-02"), tx.Amount, tx.Category, tx.Description)
	}
	if len(results) == 0 {
		fmt.Println("no matches")
	}
	return nil
}

func runSetBalance(ctx context.Context, deps *Dependencies, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: finsight set-balance <value>")
	}
	balance, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", args[0], err)
	}
	return deps.Store.SetDebitCardBalance(ctx, balance)
}

func runServe(ctx context.Context, deps *Dependencies) error {
	if err := deps.Scheduler.Start(); err != nil {
		return err
	}
	defer deps.Scheduler.Stop()

	if deps.Config.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", deps.Config.Metrics.Port)
		go func() {
			deps.Logger.Info("metrics endpoint listening", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				deps.Logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	deps.Logger.Info("shutting down")
	return nil
}
