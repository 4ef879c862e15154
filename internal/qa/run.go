// Package qa verifies an emitted output tree: it parses every page document
// and runs the link, metadata and content checks over the parsed facts.
package qa

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/checks"
	"github.com/dtnitsch/sitegen/pkg/facts"
	"github.com/dtnitsch/sitegen/pkg/sitemap"
	"github.com/dtnitsch/sitegen/pkg/storage"
	"golang.org/x/sync/errgroup"
)

// Run discovers every index.html under opts.Root, extracts page facts and
// runs all checks. Findings never fail the run.
func Run(ctx context.Context, logger *slog.Logger, opts Options) (*Result, error) {
	s := opts.Storage
	if s == nil {
		s = &storage.Storage{}
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = &facts.HTMLExtractor{BaseURL: opts.BaseURL, MainText: opts.Language != nil}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = models.DefaultWorkerCount
	}
	threshold := opts.ThinThreshold
	if threshold <= 0 {
		threshold = models.DefaultThinThreshold
	}
	logger = logger.With("root", opts.Root)

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrOutputRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", models.ErrOutputRoot, opts.Root)
	}

	pages, err := discover(s, opts.Root)
	if err != nil {
		return nil, err
	}

	logger.Info("Starting concurrent extraction phase", "page_count", len(pages), "workers", workers)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(pages))
	results := make(chan JobResult, len(pages))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, extractor, s, &wg, jobs, results)
	}
	for _, job := range pages {
		jobs <- job
	}
	close(jobs)

	wg.Wait()
	close(results)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Info("All extraction workers finished")

	res := &Result{TotalPages: len(pages)}
	for jr := range results {
		if jr.Warning != nil {
			res.Warnings = append(res.Warnings, *jr.Warning)
			continue
		}
		res.Facts = append(res.Facts, jr.Facts)
	}
	sort.Slice(res.Facts, func(i, j int) bool { return res.Facts[i].Path < res.Facts[j].Path })
	sort.Slice(res.Warnings, func(i, j int) bool { return res.Warnings[i].Page < res.Warnings[j].Page })

	known := make([]string, len(pages))
	for i, p := range pages {
		known[i] = p.Path
	}

	if err := runChecks(ctx, logger, s, opts, threshold, known, res); err != nil {
		return nil, err
	}

	logger.Info("QA finished", "pages", res.TotalPages, "findings", len(res.Findings), "parse_warnings", len(res.Warnings))
	return res, nil
}

// discover lists page documents sorted by URL path.
func discover(s *storage.Storage, root string) ([]Job, error) {
	files, err := s.FindFiles(root, models.IndexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to discover pages: %w", err)
	}
	jobs := make([]Job, 0, len(files))
	for _, f := range files {
		p, ok := models.PathForFile(root, f)
		if !ok {
			continue
		}
		jobs = append(jobs, Job{Path: p, File: f})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Path < jobs[j].Path })
	return jobs, nil
}

// runChecks runs every check concurrently over the same facts snapshot and
// concatenates their findings in a fixed order.
func runChecks(ctx context.Context, logger *slog.Logger, s *storage.Storage, opts Options, threshold int, known []string, res *Result) error {
	const (
		slotBroken = iota
		slotTitles
		slotDescriptions
		slotThin
		slotSitemap
		slotRobots
		slotLanguage
		slotCount
	)
	var slots [slotCount][]models.Finding
	var notes [slotCount]*models.ParseWarning
	snapshot := res.Facts

	sitemapPath := filepath.Join(opts.Root, models.SitemapFile)
	robotsPath := filepath.Join(opts.Root, models.RobotsFile)
	res.Ran.Sitemap = s.HasFile(sitemapPath)
	res.Ran.Robots = s.HasFile(robotsPath)
	res.Ran.Language = opts.Language != nil

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		slots[slotBroken] = checks.BrokenLinks(snapshot, known)
		return nil
	})
	g.Go(func() error {
		slots[slotTitles] = checks.DuplicateTitles(snapshot)
		return nil
	})
	g.Go(func() error {
		slots[slotDescriptions] = checks.DuplicateDescriptions(snapshot)
		return nil
	})
	g.Go(func() error {
		slots[slotThin] = checks.ThinContent(snapshot, threshold)
		return nil
	})
	if res.Ran.Sitemap {
		g.Go(func() error {
			data, err := s.ReadFile(sitemapPath)
			if err != nil {
				notes[slotSitemap] = indexFileWarning(models.SitemapFile, sitemapPath, err)
				return nil
			}
			locs, err := sitemap.Parse(data)
			if err != nil {
				slots[slotSitemap] = []models.Finding{{
					Kind:   models.FindingSitemapMismatch,
					Target: models.SitemapFile,
					Detail: err.Error(),
				}}
				return nil
			}
			slots[slotSitemap] = checks.SitemapCoverage(snapshot, known, locs)
			return nil
		})
	}
	if res.Ran.Robots {
		g.Go(func() error {
			data, err := s.ReadFile(robotsPath)
			if err != nil {
				notes[slotRobots] = indexFileWarning(models.RobotsFile, robotsPath, err)
				return nil
			}
			found, err := checks.RobotsBlocked(snapshot, data)
			if err != nil {
				notes[slotRobots] = indexFileWarning(models.RobotsFile, robotsPath, err)
				return nil
			}
			slots[slotRobots] = found
			return nil
		})
	}
	if res.Ran.Language {
		g.Go(func() error {
			slots[slotLanguage] = checks.Language(snapshot, opts.Language)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("QA check failed", "error", err)
		return fmt.Errorf("qa check failed: %w", err)
	}

	// a check whose input could not be read or parsed did not run
	if notes[slotSitemap] != nil {
		res.Ran.Sitemap = false
	}
	if notes[slotRobots] != nil {
		res.Ran.Robots = false
	}
	for _, w := range notes {
		if w != nil {
			logger.Warn("Skipping check", "file", w.File, "reason", w.Reason)
			res.Warnings = append(res.Warnings, *w)
		}
	}
	sort.Slice(res.Warnings, func(i, j int) bool { return res.Warnings[i].Page < res.Warnings[j].Page })

	for _, found := range slots {
		res.Findings = append(res.Findings, found...)
	}
	return nil
}

func indexFileWarning(name, file string, err error) *models.ParseWarning {
	return &models.ParseWarning{Page: "/" + name, File: file, Reason: err.Error()}
}
