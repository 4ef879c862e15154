package pipeline

import (
	"fmt"
	"time"

	"github.com/dtnitsch/sitegen/internal/common"
	"github.com/dtnitsch/sitegen/internal/qa"
	"github.com/dtnitsch/sitegen/pkg/report"
	"github.com/urfave/cli/v2"
)

// RunAction builds the site, verifies it and prints the report summary.
func RunAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	startTime := time.Now()

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return common.Usage(logger, "invalid configuration", err)
	}
	detector, err := qa.Detector(cfg)
	if err != nil {
		return common.Usage(logger, "invalid language configuration", err)
	}

	res, err := Run(c.Context, logger, cfg, detector)
	if err != nil {
		return common.Fail(logger, "run failed", err)
	}

	fmt.Printf("built %d pages into %s\n", len(res.Build.Pages), cfg.OutputDir)
	if res.Assets.Stylesheet != "" || res.Assets.Images > 0 {
		fmt.Printf("staged stylesheet=%q images=%d\n", res.Assets.Stylesheet, res.Assets.Images)
	}
	fmt.Println()
	fmt.Print(report.Text(res.Report, res.QA.Warnings))
	fmt.Printf("\nreport written to %s in %.2fs\n", res.ReportPath, time.Since(startTime).Seconds())
	if res.RunID != "" {
		fmt.Printf("run id: %s\n", res.RunID)
	}
	return nil
}
