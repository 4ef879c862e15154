// Package pipeline runs the full build-and-verify sequence: build the output
// tree, stage assets, verify the tree, write the report and optionally record
// the run in the history ledger.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/sitegen/internal/build"
	"github.com/dtnitsch/sitegen/internal/qa"
	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/assets"
	"github.com/dtnitsch/sitegen/pkg/checks"
	"github.com/dtnitsch/sitegen/pkg/db"
	"github.com/dtnitsch/sitegen/pkg/report"
	"github.com/dtnitsch/sitegen/pkg/storage"
)

// Result is everything one run produced.
type Result struct {
	Site       models.SiteInfo // resolved site context
	Build      *build.Result
	Assets     assets.Staged
	QA         *qa.Result
	Report     models.BuildReport
	ReportPath string
	RunID      string // empty unless the history ledger is enabled
}

// Run builds the site described by cfg and verifies the result. Build and QA
// are strictly sequential; findings never make Run fail. A nil detector
// skips the language check.
func Run(ctx context.Context, logger *slog.Logger, cfg *models.SiteConfig, detector *checks.LanguageDetector) (*Result, error) {
	startedAt := time.Now()
	s := &storage.Storage{}

	site, err := build.LoadSite(cfg)
	if err != nil {
		return nil, err
	}

	built, err := build.Build(ctx, logger, site.Catalog.Specs(), site.Renderer, build.Options{
		Root:    cfg.OutputDir,
		BaseURL: site.Info.BaseURL,
		Workers: cfg.WorkerCount,
		Storage: s,
	})
	if err != nil {
		return nil, err
	}
	res := &Result{Site: site.Info, Build: built}

	staged, err := assets.Stage(cfg.OutputDir, cfg.Assets.Stylesheet, cfg.Assets.ImagesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrOutputRoot, err)
	}
	for _, missing := range staged.Missing {
		logger.Warn("Asset source not found, skipping", "source", missing)
	}
	res.Assets = staged

	checked, err := qa.Run(ctx, logger, qa.Options{
		Root:          cfg.OutputDir,
		BaseURL:       site.Info.BaseURL,
		ThinThreshold: cfg.QA.ThinThreshold,
		Workers:       cfg.WorkerCount,
		Language:      detector,
		Storage:       s,
	})
	if err != nil {
		return nil, err
	}
	res.QA = checked
	res.Report = checked.Report()

	res.ReportPath, err = report.Write(s, cfg.OutputDir, res.Report, checked.Findings, checked.Warnings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrOutputRoot, err)
	}
	if stats, err := s.GetFileStats(res.ReportPath); err == nil {
		logger.Info("Report written", "path", res.ReportPath, "bytes", stats.SizeBytes)
	}

	if cfg.HistoryDB != "" {
		res.RunID, err = record(cfg.HistoryDB, startedAt, cfg.OutputDir, res)
		if err != nil {
			return res, fmt.Errorf("failed to record run history: %w", err)
		}
		logger.Info("Recorded run", "run_id", res.RunID, "history_db", cfg.HistoryDB)
	}

	return res, nil
}

// record stores the run summary, page hashes and findings in the ledger.
func record(dbPath string, startedAt time.Time, outputDir string, res *Result) (string, error) {
	database, err := db.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer database.Close()

	runID, err := database.InsertRun(startedAt, outputDir, res.Report)
	if err != nil {
		return "", err
	}

	pages := make([]db.RunPage, len(res.Build.Pages))
	for i, p := range res.Build.Pages {
		pages[i] = db.RunPage{Path: p.Path, Hash: p.Hash, SizeBytes: int64(len(p.HTML))}
	}
	if err := database.InsertRunPages(runID, pages); err != nil {
		return runID, err
	}
	if err := database.InsertRunFindings(runID, res.QA.Findings); err != nil {
		return runID, err
	}
	return runID, nil
}
