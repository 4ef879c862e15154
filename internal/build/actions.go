package build

import (
	"fmt"
	"time"

	"github.com/dtnitsch/sitegen/internal/common"
	"github.com/urfave/cli/v2"
)

// BuildAction writes the output tree without running QA.
func BuildAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	startTime := time.Now()

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return common.Usage(logger, "invalid configuration", err)
	}

	site, err := LoadSite(cfg)
	if err != nil {
		return common.Usage(logger, "failed to load site content", err)
	}

	res, err := Build(c.Context, logger, site.Catalog.Specs(), site.Renderer, Options{
		Root:    cfg.OutputDir,
		BaseURL: site.Info.BaseURL,
		Workers: cfg.WorkerCount,
	})
	if err != nil {
		return common.Fail(logger, "build failed", err)
	}

	fmt.Printf("built %d pages into %s in %.2fs\n", len(res.Pages), cfg.OutputDir, time.Since(startTime).Seconds())
	if len(res.Pruned) > 0 {
		fmt.Printf("removed %d stale pages\n", len(res.Pruned))
	}
	return nil
}
