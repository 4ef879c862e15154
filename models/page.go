package models

import "fmt"

// PageKind selects the layout block a page is rendered with.
type PageKind string

const (
	KindContent     PageKind = "content"
	KindLanding     PageKind = "landing"
	KindKeyword     PageKind = "keyword" // landing page derived from an SEO topic
	KindPricing     PageKind = "pricing"
	KindPlaceholder PageKind = "placeholder"
)

// Link is an anchor target with its label.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Hero struct {
	Headline string `yaml:"headline"`
	Subline  string `yaml:"subline"`
	CTA      string `yaml:"cta"`
}

type Solution struct {
	Headline string `yaml:"headline"`
	Text     string `yaml:"text"`
}

// PricingTier is one plan on the pricing page.
type PricingTier struct {
	Name     string   `yaml:"name"`
	Price    string   `yaml:"price"`
	Features []string `yaml:"features"`
	CTA      string   `yaml:"cta"`
}

// PageSpec is the declarative description of a single page.
// The ID determines the output path; specs are passed by value and never
// mutated once handed to the renderer.
type PageSpec struct {
	ID          string        `yaml:"id"`
	Kind        PageKind      `yaml:"kind"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Heading     string        `yaml:"heading"`
	Body        string        `yaml:"body"` // markdown
	Hero        *Hero         `yaml:"hero,omitempty"`
	Problems    []string      `yaml:"problems,omitempty"`
	Solution    *Solution     `yaml:"solution,omitempty"`
	Features    []string      `yaml:"features,omitempty"`
	Steps       []string      `yaml:"steps,omitempty"`
	Trust       string        `yaml:"trust,omitempty"`
	FinalCTA    string        `yaml:"cta_final,omitempty"`
	Tiers       []PricingTier `yaml:"tiers,omitempty"`
	Links       []Link        `yaml:"links,omitempty"`
}

// Clone returns a deep copy so callers cannot alias slices of a stored spec.
func (p PageSpec) Clone() PageSpec {
	out := p
	if p.Hero != nil {
		h := *p.Hero
		out.Hero = &h
	}
	if p.Solution != nil {
		s := *p.Solution
		out.Solution = &s
	}
	out.Problems = cloneStrings(p.Problems)
	out.Features = cloneStrings(p.Features)
	out.Steps = cloneStrings(p.Steps)
	if p.Tiers != nil {
		out.Tiers = make([]PricingTier, len(p.Tiers))
		for i, t := range p.Tiers {
			t.Features = cloneStrings(t.Features)
			out.Tiers[i] = t
		}
	}
	if p.Links != nil {
		out.Links = append([]Link(nil), p.Links...)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// RenderedPage is the HTML produced for one PageSpec during a build.
type RenderedPage struct {
	ID   string
	Path string // URL path, e.g. "/preise/"
	File string // output file on disk
	HTML []byte
	Hash string // sha256 of HTML
}

// Merge returns s with every non-empty field of over applied on top.
func (s SiteInfo) Merge(over SiteInfo) SiteInfo {
	if over.Name != "" {
		s.Name = over.Name
	}
	if over.BaseURL != "" {
		s.BaseURL = over.BaseURL
	}
	if over.Lang != "" {
		s.Lang = over.Lang
	}
	if over.Footer != "" {
		s.Footer = over.Footer
	}
	if len(over.Nav) > 0 {
		s.Nav = append([]Link(nil), over.Nav...)
	}
	return s
}

// WithDefaults fills an empty base URL and language.
func (s SiteInfo) WithDefaults() SiteInfo {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Lang == "" {
		s.Lang = DefaultLang
	}
	return s
}

// Validate checks the fields a page of its kind cannot be rendered without.
func (p PageSpec) Validate() error {
	if err := ValidateID(p.ID); err != nil {
		return err
	}
	if p.Title == "" {
		return fmt.Errorf("missing title")
	}
	switch p.Kind {
	case KindContent, KindPlaceholder:
		if p.Heading == "" && p.Body == "" {
			return fmt.Errorf("%s page needs a heading or body", p.Kind)
		}
	case KindLanding, KindKeyword:
		if p.Hero == nil || p.Hero.Headline == "" {
			return fmt.Errorf("%s page needs a hero headline", p.Kind)
		}
	case KindPricing:
		if len(p.Tiers) == 0 {
			return fmt.Errorf("pricing page needs at least one tier")
		}
		for i, t := range p.Tiers {
			if t.Name == "" {
				return fmt.Errorf("pricing tier %d has no name", i+1)
			}
		}
	default:
		return fmt.Errorf("unknown page kind %q", p.Kind)
	}
	return nil
}
