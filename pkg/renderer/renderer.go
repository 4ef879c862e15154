// Package renderer turns a PageSpec into a complete HTML document.
//
// Plain text fields are contextually escaped by html/template. Body fields are
// Markdown: they are converted with goldmark and then sanitized with
// bluemonday's UGC policy before being inserted as trusted HTML.
package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dtnitsch/sitegen/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// Renderer is safe for concurrent use once constructed.
type Renderer struct {
	site       models.SiteInfo
	stylesheet string
	tmpl       *template.Template
	markdown   goldmark.Markdown
	policy     *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStylesheet sets the stylesheet href every page links to.
func WithStylesheet(href string) Option {
	return func(r *Renderer) {
		if href != "" {
			r.stylesheet = href
		}
	}
}

type pageData struct {
	Site       models.SiteInfo
	Spec       models.PageSpec
	Block      string
	Canonical  string
	Stylesheet string
	Body       template.HTML
}

// New parses the page templates for the given site.
func New(site models.SiteInfo, opts ...Option) (*Renderer, error) {
	tmpl, err := template.New("site").Parse(allTemplates())
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	if site.Lang == "" {
		site.Lang = models.DefaultLang
	}
	if site.BaseURL == "" {
		site.BaseURL = models.DefaultBaseURL
	}

	r := &Renderer{
		site:       site,
		stylesheet: "/" + models.DefaultStylesheet,
		tmpl:       tmpl,
		markdown:   goldmark.New(),
		policy:     bluemonday.UGCPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render produces the HTML document for spec. The output depends only on the
// spec and the site context, so identical input yields identical bytes.
func (r *Renderer) Render(spec models.PageSpec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, &models.PageError{ID: spec.ID, Err: err}
	}

	body, err := r.markdownToHTML(spec.Body)
	if err != nil {
		return nil, &models.PageError{ID: spec.ID, Err: err}
	}

	data := pageData{
		Site:       r.site,
		Spec:       spec,
		Block:      blockFor(spec.Kind),
		Canonical:  models.AbsoluteURL(r.site.BaseURL, models.PagePath(spec.ID)),
		Stylesheet: r.stylesheet,
		Body:       body,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, &models.PageError{ID: spec.ID, Err: fmt.Errorf("failed to execute template: %w", err)}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) markdownToHTML(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown body: %w", err)
	}
	// #nosec G203 -- sanitized by the UGC policy
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

func blockFor(kind models.PageKind) string {
	switch kind {
	case models.KindLanding, models.KindKeyword:
		return "render-landing"
	case models.KindPricing:
		return "render-pricing"
	case models.KindPlaceholder:
		return "render-placeholder"
	default:
		return "render-content"
	}
}
