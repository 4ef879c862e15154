// Package report aggregates QA findings into a BuildReport and writes the
// report artifacts at the root of the output tree.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/storage"
	"gopkg.in/yaml.v3"
)

// Checks records which supplemental checks ran during a QA pass.
type Checks struct {
	Sitemap  bool
	Robots   bool
	Language bool
}

// Document is the structure of build_report.yaml.
type Document struct {
	Summary  models.BuildReport    `yaml:"summary"`
	Findings []models.Finding      `yaml:"findings"`
	Warnings []models.ParseWarning `yaml:"parse_warnings,omitempty"`
}

// Summarize counts findings by kind. Duplicate findings count once per
// duplicated value, broken links once per occurrence.
func Summarize(totalPages int, findings []models.Finding, warnings []models.ParseWarning, ran Checks) models.BuildReport {
	r := models.BuildReport{
		TotalPages:    totalPages,
		ParseWarnings: len(warnings),
	}

	var sitemap, robots, lang int
	for _, f := range findings {
		switch f.Kind {
		case models.FindingBrokenLink:
			r.BrokenLinks++
		case models.FindingDuplicateTitle:
			r.DuplicateTitles++
		case models.FindingDuplicateDescription:
			r.DuplicateDescriptions++
		case models.FindingThinContent:
			r.ThinPages++
		case models.FindingSitemapMismatch:
			sitemap++
		case models.FindingRobotsBlocked:
			robots++
		case models.FindingLanguageMismatch:
			lang++
		}
	}

	if ran.Sitemap {
		r.SitemapMismatches = &sitemap
	}
	if ran.Robots {
		r.RobotsBlocked = &robots
	}
	if ran.Language {
		r.LanguageMismatches = &lang
	}
	return r
}

// Text renders the plain-text report. The first five lines always appear in
// the same order so the file can be diffed between runs.
func Text(r models.BuildReport, warnings []models.ParseWarning) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "total pages: %d\n", r.TotalPages)
	fmt.Fprintf(&sb, "broken links: %d\n", r.BrokenLinks)
	fmt.Fprintf(&sb, "duplicate titles: %d\n", r.DuplicateTitles)
	fmt.Fprintf(&sb, "duplicate descriptions: %d\n", r.DuplicateDescriptions)
	fmt.Fprintf(&sb, "thin pages: %d\n", r.ThinPages)
	fmt.Fprintf(&sb, "parse warnings: %d\n", r.ParseWarnings)

	if r.SitemapMismatches != nil {
		fmt.Fprintf(&sb, "sitemap mismatches: %d\n", *r.SitemapMismatches)
	}
	if r.RobotsBlocked != nil {
		fmt.Fprintf(&sb, "robots blocked: %d\n", *r.RobotsBlocked)
	}
	if r.LanguageMismatches != nil {
		fmt.Fprintf(&sb, "language mismatches: %d\n", *r.LanguageMismatches)
	}

	if len(warnings) > 0 {
		sb.WriteString("notes:\n")
		for _, w := range warnings {
			fmt.Fprintf(&sb, "- parse warning: %s (%s)\n", w.Page, w.Reason)
		}
	}
	return sb.String()
}

// Write stores build_report.txt and build_report.yaml at root, replacing any
// earlier report. It returns the path of the text report.
func Write(s *storage.Storage, root string, r models.BuildReport, findings []models.Finding, warnings []models.ParseWarning) (string, error) {
	textPath := filepath.Join(root, models.ReportFile)
	if err := s.SaveFile(textPath, []byte(Text(r, warnings))); err != nil {
		return "", fmt.Errorf("failed to write text report: %w", err)
	}

	doc := Document{Summary: r, Findings: findings, Warnings: warnings}
	if doc.Findings == nil {
		doc.Findings = []models.Finding{}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report data: %w", err)
	}
	if err := s.SaveFile(filepath.Join(root, models.ReportDataFile), data); err != nil {
		return "", fmt.Errorf("failed to write report data: %w", err)
	}

	return textPath, nil
}

// Remove deletes the report artifacts at root so a stale report never
// outlives the tree it described. Missing files are not an error.
func Remove(s *storage.Storage, root string) error {
	for _, name := range []string{models.ReportFile, models.ReportDataFile} {
		if err := s.Remove(filepath.Join(root, name)); err != nil {
			return err
		}
	}
	return nil
}

// Read loads a previously written build_report.yaml.
func Read(s *storage.Storage, root string) (*Document, error) {
	data, err := s.ReadFile(filepath.Join(root, models.ReportDataFile))
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse report data: %w", err)
	}
	return &doc, nil
}
