package build

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dtnitsch/sitegen/internal/common"
	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/storage"
)

// worker renders and writes pages from the jobs channel and sends the
// outcome of each to results.
func worker(ctx context.Context, id int, logger *slog.Logger, r Renderer, s *storage.Storage, root string, wg *sync.WaitGroup, jobs <-chan Job, results chan<- JobResult) {
	defer wg.Done()
	for job := range jobs {
		spec := job.Spec
		result := JobResult{Page: models.RenderedPage{
			ID:   spec.ID,
			Path: models.PagePath(spec.ID),
			File: models.OutputFile(root, spec.ID),
		}}

		if err := ctx.Err(); err != nil {
			result.Error = err
			result.ErrorType = "canceled"
			results <- result
			continue
		}

		logger.Debug("Worker started job", "worker_id", id, "page", spec.ID)

		html, err := r.Render(spec)
		if err != nil {
			logger.Error("Error rendering page", "worker_id", id, "page", spec.ID, "error", err)
			result.Error = err
			result.ErrorType = "render_error"
			results <- result
			continue
		}

		if err := s.SaveFile(result.Page.File, html); err != nil {
			logger.Error("Error writing page", "worker_id", id, "page", spec.ID, "file", result.Page.File, "error", err)
			result.Error = err
			result.ErrorType = "write_error"
			results <- result
			continue
		}

		result.Page.HTML = html
		result.Page.Hash = common.ContentHash(html)
		results <- result
		logger.Debug("Worker finished page", "worker_id", id, "page", spec.ID, "bytes", len(html))
	}
}
