package models

import "fmt"

// FindingKind classifies a QA finding.
type FindingKind string

const (
	FindingBrokenLink           FindingKind = "broken_link"
	FindingDuplicateTitle       FindingKind = "duplicate_title"
	FindingDuplicateDescription FindingKind = "duplicate_description"
	FindingThinContent          FindingKind = "thin_content"
	FindingSitemapMismatch      FindingKind = "sitemap_mismatch"
	FindingRobotsBlocked        FindingKind = "robots_blocked"
	FindingLanguageMismatch     FindingKind = "language_mismatch"
)

// Finding is one reported QA issue. Which fields are set depends on Kind:
//
//	broken_link            Page, Target
//	duplicate_title        Value, Count, Pages
//	duplicate_description  Value, Count, Pages
//	thin_content           Page, Length
//	sitemap_mismatch       Page or Target, Detail
//	robots_blocked         Page
//	language_mismatch      Page, Detail
type Finding struct {
	Kind   FindingKind `yaml:"kind"`
	Page   string      `yaml:"page,omitempty"`
	Target string      `yaml:"target,omitempty"`
	Value  string      `yaml:"value,omitempty"`
	Count  int         `yaml:"count,omitempty"`
	Pages  []string    `yaml:"pages,omitempty"`
	Length int         `yaml:"length,omitempty"`
	Detail string      `yaml:"detail,omitempty"`
}

func BrokenLink(page, target string) Finding {
	return Finding{Kind: FindingBrokenLink, Page: page, Target: target}
}

func DuplicateTitle(title string, pages []string) Finding {
	return Finding{Kind: FindingDuplicateTitle, Value: title, Count: len(pages), Pages: pages}
}

func DuplicateDescription(description string, pages []string) Finding {
	return Finding{Kind: FindingDuplicateDescription, Value: description, Count: len(pages), Pages: pages}
}

func ThinContent(page string, length int) Finding {
	return Finding{Kind: FindingThinContent, Page: page, Length: length}
}

// String renders a finding as a single report line.
func (f Finding) String() string {
	switch f.Kind {
	case FindingBrokenLink:
		return fmt.Sprintf("broken link: %s -> %s", f.Page, f.Target)
	case FindingDuplicateTitle:
		return fmt.Sprintf("duplicate title (%d pages): %q", f.Count, f.Value)
	case FindingDuplicateDescription:
		return fmt.Sprintf("duplicate description (%d pages): %q", f.Count, f.Value)
	case FindingThinContent:
		return fmt.Sprintf("thin content: %s (%d chars)", f.Page, f.Length)
	case FindingSitemapMismatch:
		if f.Page != "" {
			return fmt.Sprintf("sitemap mismatch: %s (%s)", f.Page, f.Detail)
		}
		return fmt.Sprintf("sitemap mismatch: %s (%s)", f.Target, f.Detail)
	case FindingRobotsBlocked:
		return fmt.Sprintf("blocked by robots.txt: %s", f.Page)
	case FindingLanguageMismatch:
		return fmt.Sprintf("language mismatch: %s (%s)", f.Page, f.Detail)
	}
	return string(f.Kind)
}

// BuildReport holds the summary counts of one QA run.
type BuildReport struct {
	TotalPages            int `yaml:"total_pages"`
	BrokenLinks           int `yaml:"broken_links"`
	DuplicateTitles       int `yaml:"duplicate_titles"`
	DuplicateDescriptions int `yaml:"duplicate_descriptions"`
	ThinPages             int `yaml:"thin_pages"`
	ParseWarnings         int `yaml:"parse_warnings"`

	// Supplemental checks; a nil count means the check did not run.
	SitemapMismatches  *int `yaml:"sitemap_mismatches,omitempty"`
	RobotsBlocked      *int `yaml:"robots_blocked,omitempty"`
	LanguageMismatches *int `yaml:"language_mismatches,omitempty"`
}
