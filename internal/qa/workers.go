package qa

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/facts"
	"github.com/dtnitsch/sitegen/pkg/storage"
)

// worker extracts facts for each discovered page. Read and parse failures
// become parse warnings rather than errors.
func worker(ctx context.Context, id int, logger *slog.Logger, e facts.Extractor, s *storage.Storage, wg *sync.WaitGroup, jobs <-chan Job, results chan<- JobResult) {
	defer wg.Done()
	for job := range jobs {
		if ctx.Err() != nil {
			return
		}

		doc, err := s.ReadFile(job.File)
		if err != nil {
			logger.Warn("Unreadable page", "worker_id", id, "page", job.Path, "error", err)
			results <- JobResult{Warning: &models.ParseWarning{Page: job.Path, File: job.File, Reason: "unreadable: " + err.Error()}}
			continue
		}

		pf, err := e.Extract(job.Path, doc)
		if err != nil {
			logger.Warn("Unparsable page", "worker_id", id, "page", job.Path, "error", err)
			results <- JobResult{Warning: &models.ParseWarning{Page: job.Path, File: job.File, Reason: err.Error()}}
			continue
		}
		pf.File = job.File

		results <- JobResult{Facts: pf}
		logger.Debug("Worker extracted page", "worker_id", id, "page", job.Path, "links", len(pf.Links), "text_length", pf.TextLength)
	}
}
