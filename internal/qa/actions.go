package qa

import (
	"fmt"
	"time"

	"github.com/dtnitsch/sitegen/internal/common"
	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/checks"
	"github.com/dtnitsch/sitegen/pkg/report"
	"github.com/dtnitsch/sitegen/pkg/storage"
	"github.com/urfave/cli/v2"
)

// QAAction verifies an existing output tree and rewrites its report.
func QAAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	startTime := time.Now()

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return common.Usage(logger, "invalid configuration", err)
	}

	detector, err := Detector(cfg)
	if err != nil {
		return common.Usage(logger, "invalid language configuration", err)
	}

	s := &storage.Storage{}
	if err := report.Remove(s, cfg.OutputDir); err != nil {
		return common.Fail(logger, "failed to remove previous report", fmt.Errorf("%w: %w", models.ErrOutputRoot, err))
	}

	res, err := Run(c.Context, logger, Options{
		Root:          cfg.OutputDir,
		BaseURL:       cfg.Site.BaseURL,
		ThinThreshold: cfg.QA.ThinThreshold,
		Workers:       cfg.WorkerCount,
		Language:      detector,
		Storage:       s,
	})
	if err != nil {
		return common.Fail(logger, "qa failed", err)
	}

	summary := res.Report()
	reportPath, err := report.Write(s, cfg.OutputDir, summary, res.Findings, res.Warnings)
	if err != nil {
		return common.Fail(logger, "failed to write report", fmt.Errorf("%w: %w", models.ErrOutputRoot, err))
	}

	fmt.Print(report.Text(summary, res.Warnings))
	fmt.Printf("\nreport written to %s in %.2fs\n", reportPath, time.Since(startTime).Seconds())
	return nil
}

// Detector returns the language detector cfg asks for, or nil when the
// language check is disabled.
func Detector(cfg *models.SiteConfig) (*checks.LanguageDetector, error) {
	if !cfg.QA.LanguageCheck {
		return nil, nil
	}
	return checks.NewLanguageDetector(cfg.QA.Languages)
}
