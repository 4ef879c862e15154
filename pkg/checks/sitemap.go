package checks

import (
	"net/url"
	"sort"

	"github.com/dtnitsch/sitegen/models"
)

// SitemapCoverage compares the sitemap <loc> entries with the pages in the
// tree. Pages missing from the sitemap are reported first (page order), then
// sitemap entries that point at no known page (sorted).
func SitemapCoverage(pages []models.PageFacts, known []string, locs []string) []models.Finding {
	listed := make(map[string]bool, len(locs))
	var stray []string
	valid := make(map[string]bool, len(known))
	for _, k := range known {
		valid[NormalizePath(k)] = true
	}

	for _, loc := range locs {
		u, err := url.Parse(loc)
		if err != nil {
			stray = append(stray, loc)
			continue
		}
		p := NormalizePath(u.Path)
		listed[p] = true
		if !valid[p] {
			stray = append(stray, loc)
		}
	}
	sort.Strings(stray)

	var findings []models.Finding
	for _, p := range pages {
		if !listed[NormalizePath(p.Path)] {
			findings = append(findings, models.Finding{
				Kind:   models.FindingSitemapMismatch,
				Page:   p.Path,
				Detail: "page missing from sitemap",
			})
		}
	}
	for _, loc := range stray {
		findings = append(findings, models.Finding{
			Kind:   models.FindingSitemapMismatch,
			Target: loc,
			Detail: "sitemap entry has no page",
		})
	}
	return findings
}
