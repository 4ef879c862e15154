// Package build writes the output tree: one index.html per page spec plus
// sitemap.xml and robots.txt.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/report"
	"github.com/dtnitsch/sitegen/pkg/sitemap"
	"github.com/dtnitsch/sitegen/pkg/storage"
)

// Validate checks every spec and the uniqueness of identifiers. All problems
// are returned together as joined *models.PageError values.
func Validate(specs []models.PageSpec) error {
	seen := make(map[string]bool, len(specs))
	var errs []error
	for _, spec := range specs {
		if seen[spec.ID] {
			errs = append(errs, &models.PageError{ID: spec.ID, Err: fmt.Errorf("duplicate page identifier")})
			continue
		}
		seen[spec.ID] = true
		if err := spec.Validate(); err != nil {
			errs = append(errs, &models.PageError{ID: spec.ID, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Build renders every spec into the output root. Invalid specs abort the
// build before any file is touched. Rebuilding identical input produces a
// byte-identical tree.
func Build(ctx context.Context, logger *slog.Logger, specs []models.PageSpec, r Renderer, opts Options) (*Result, error) {
	if err := Validate(specs); err != nil {
		return nil, err
	}

	s := opts.Storage
	if s == nil {
		s = &storage.Storage{}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = models.DefaultWorkerCount
	}
	root := opts.Root

	if err := s.CheckWritable(root); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrOutputRoot, root, err)
	}

	if err := report.Remove(s, root); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrOutputRoot, err)
	}

	logger.Info("Starting concurrent build phase", "page_count", len(specs), "workers", workers, "root", root)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(specs))
	results := make(chan JobResult, len(specs))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, r, s, root, &wg, jobs, results)
	}

	for _, spec := range specs {
		jobs <- Job{Spec: spec}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All build workers finished")

	result := &Result{Pages: make([]models.RenderedPage, 0, len(specs))}
	var errs []error
	for jr := range results {
		if jr.Error != nil {
			if jr.ErrorType == "write_error" {
				errs = append(errs, fmt.Errorf("%w: %w", models.ErrOutputRoot, jr.Error))
			} else {
				errs = append(errs, jr.Error)
			}
			continue
		}
		result.Pages = append(result.Pages, jr.Page)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.Slice(result.Pages, func(i, j int) bool { return result.Pages[i].Path < result.Pages[j].Path })

	if err := writeIndexFiles(s, root, opts.BaseURL, result); err != nil {
		return nil, err
	}

	pruned, err := prune(s, root, result.Pages)
	if err != nil {
		return nil, err
	}
	result.Pruned = pruned
	for _, p := range pruned {
		logger.Info("Removed stale page", "file", p)
	}

	logger.Info("Build finished", "pages", len(result.Pages), "pruned", len(pruned))
	return result, nil
}

func writeIndexFiles(s *storage.Storage, root, baseURL string, result *Result) error {
	if baseURL == "" {
		baseURL = models.DefaultBaseURL
	}

	data, err := sitemap.Encode(baseURL, result.Paths())
	if err != nil {
		return err
	}
	result.Sitemap = filepath.Join(root, models.SitemapFile)
	if err := s.SaveFile(result.Sitemap, data); err != nil {
		return fmt.Errorf("%w: %w", models.ErrOutputRoot, err)
	}

	result.Robots = filepath.Join(root, models.RobotsFile)
	if err := s.SaveFile(result.Robots, sitemap.Robots(baseURL)); err != nil {
		return fmt.Errorf("%w: %w", models.ErrOutputRoot, err)
	}
	return nil
}

// prune removes index.html files that no spec of this build produced, and
// their directories once empty.
func prune(s *storage.Storage, root string, pages []models.RenderedPage) ([]string, error) {
	current := make(map[string]bool, len(pages))
	for _, p := range pages {
		current[filepath.Clean(p.File)] = true
	}

	files, err := s.FindFiles(root, models.IndexFile)
	if err != nil {
		return nil, err
	}

	var pruned []string
	for _, f := range files {
		if current[filepath.Clean(f)] {
			continue
		}
		if err := s.Remove(f); err != nil {
			return pruned, err
		}
		pruned = append(pruned, f)
		for dir := filepath.Dir(f); dir != filepath.Clean(root); dir = filepath.Dir(dir) {
			if os.Remove(dir) != nil {
				break
			}
		}
	}
	return pruned, nil
}
