package checks

import "github.com/dtnitsch/sitegen/models"

// ThinContent flags pages whose visible text is shorter than threshold.
// A page of exactly threshold characters is not thin.
func ThinContent(pages []models.PageFacts, threshold int) []models.Finding {
	var findings []models.Finding
	for _, p := range pages {
		if p.TextLength < threshold {
			findings = append(findings, models.ThinContent(p.Path, p.TextLength))
		}
	}
	return findings
}
