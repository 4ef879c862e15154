package checks

import (
	"sort"

	"github.com/dtnitsch/sitegen/models"
)

// DuplicateTitles groups pages by exact title. Empty titles are ignored.
func DuplicateTitles(pages []models.PageFacts) []models.Finding {
	return duplicates(pages, func(p models.PageFacts) string { return p.Title }, models.DuplicateTitle)
}

// DuplicateDescriptions groups pages by exact meta description.
func DuplicateDescriptions(pages []models.PageFacts) []models.Finding {
	return duplicates(pages, func(p models.PageFacts) string { return p.Description }, models.DuplicateDescription)
}

func duplicates(pages []models.PageFacts, key func(models.PageFacts) string, mk func(string, []string) models.Finding) []models.Finding {
	groups := make(map[string][]string)
	for _, p := range pages {
		v := key(p)
		if v == "" {
			continue
		}
		groups[v] = append(groups[v], p.Path)
	}

	values := make([]string, 0, len(groups))
	for v, paths := range groups {
		if len(paths) >= 2 {
			values = append(values, v)
		}
	}
	sort.Strings(values)

	findings := make([]models.Finding, 0, len(values))
	for _, v := range values {
		paths := append([]string(nil), groups[v]...)
		sort.Strings(paths)
		findings = append(findings, mk(v, paths))
	}
	return findings
}
