package qa

import (
	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/checks"
	"github.com/dtnitsch/sitegen/pkg/facts"
	"github.com/dtnitsch/sitegen/pkg/report"
	"github.com/dtnitsch/sitegen/pkg/storage"
)

// Options configures a QA pass over an output tree.
type Options struct {
	Root          string
	BaseURL       string
	ThinThreshold int
	Workers       int
	// Extractor defaults to a facts.HTMLExtractor.
	Extractor facts.Extractor
	// Language enables the language check when set.
	Language *checks.LanguageDetector
	Storage  *storage.Storage
}

// Job is one discovered page document.
type Job struct {
	Path string
	File string
}

// JobResult holds the facts of one page, or the reason it could not be parsed.
type JobResult struct {
	Facts   models.PageFacts
	Warning *models.ParseWarning
}

// Result is the outcome of a QA pass. The tree itself is never modified.
type Result struct {
	TotalPages int
	Facts      []models.PageFacts // parsed pages, sorted by path
	Warnings   []models.ParseWarning
	Findings   []models.Finding
	Ran        report.Checks
}

// Report summarizes the pass.
func (r *Result) Report() models.BuildReport {
	return report.Summarize(r.TotalPages, r.Findings, r.Warnings, r.Ran)
}
