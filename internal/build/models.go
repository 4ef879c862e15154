package build

import (
	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/storage"
)

// Renderer turns a page spec into an HTML document.
type Renderer interface {
	Render(spec models.PageSpec) ([]byte, error)
}

// Options configures a build.
type Options struct {
	Root    string
	BaseURL string
	Workers int
	Storage *storage.Storage
}

// Job is one page to render and write.
type Job struct {
	Spec models.PageSpec
}

// JobResult holds the outcome of a processed job.
type JobResult struct {
	Page      models.RenderedPage
	Error     error
	ErrorType string // render_error, write_error, canceled
}

// Result describes a finished build.
type Result struct {
	Pages   []models.RenderedPage // sorted by URL path
	Sitemap string
	Robots  string
	Pruned  []string // stale index.html files removed from earlier builds
}

// Paths returns the URL paths of every built page.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Pages))
	for i, p := range r.Pages {
		paths[i] = p.Path
	}
	return paths
}
