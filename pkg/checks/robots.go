package checks

import (
	"fmt"

	"github.com/dtnitsch/sitegen/models"
	"github.com/temoto/robotstxt"
)

// CrawlerAgent is the user agent pages are tested against.
const CrawlerAgent = "*"

// RobotsBlocked reports pages that robots.txt disallows for CrawlerAgent.
func RobotsBlocked(pages []models.PageFacts, robots []byte) ([]models.Finding, error) {
	data, err := robotstxt.FromBytes(robots)
	if err != nil {
		return nil, fmt.Errorf("failed to parse robots.txt: %w", err)
	}

	var findings []models.Finding
	for _, p := range pages {
		if !data.TestAgent(p.Path, CrawlerAgent) {
			findings = append(findings, models.Finding{Kind: models.FindingRobotsBlocked, Page: p.Path})
		}
	}
	return findings, nil
}
