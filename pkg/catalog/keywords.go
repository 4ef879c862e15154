package catalog

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/sitegen/models"
	"golang.org/x/text/cases"
)

// KeywordPlaceholder is replaced by the variant title in description templates.
const KeywordPlaceholder = "{kw}"

// Topic is an SEO base that is expanded into one landing page per intent.
type Topic struct {
	BaseSlug            string        `yaml:"base_slug"`
	BaseTitle           string        `yaml:"base_title"`
	Landing             string        `yaml:"landing"` // id of the landing page supplying the sections
	CTA                 string        `yaml:"cta"`
	DescriptionTemplate string        `yaml:"description_template"`
	Intents             []string      `yaml:"intents"`
	Links               []models.Link `yaml:"links,omitempty"`

	// Base holds the landing sections every variant inherits.
	Base models.PageSpec `yaml:"-"`
}

var transliterate = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

// NormalizeKeyword turns a free-text keyword into a slug fragment:
// case-folded, German umlauts transliterated, every run of characters
// outside [a-z0-9] collapsed into a single hyphen.
func NormalizeKeyword(keyword string) string {
	s := transliterate.Replace(cases.Fold().String(keyword))
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(parts, "-")
}

// ExpandKeyword derives the landing page for one (topic, keyword) pair.
// The result depends only on its inputs, so reruns yield identical pages.
func ExpandKeyword(topic Topic, keyword string) (models.PageSpec, error) {
	norm := NormalizeKeyword(keyword)
	if norm == "" {
		return models.PageSpec{}, fmt.Errorf("seo topic %q: keyword %q normalizes to an empty slug", topic.BaseSlug, keyword)
	}

	title := strings.TrimSpace(topic.BaseTitle + " " + keyword)
	description := strings.ReplaceAll(topic.DescriptionTemplate, KeywordPlaceholder, title)

	spec := topic.Base.Clone()
	spec.ID = topic.BaseSlug + "-" + norm
	spec.Kind = models.KindKeyword
	spec.Title = title
	spec.Description = description
	spec.Hero = &models.Hero{
		Headline: title,
		Subline:  description,
		CTA:      topic.CTA,
	}
	if len(topic.Links) > 0 {
		spec.Links = append([]models.Link(nil), topic.Links...)
	}

	if err := spec.Validate(); err != nil {
		return models.PageSpec{}, &models.PageError{ID: spec.ID, Err: err}
	}
	return spec, nil
}
