// Package catalog is the page spec store: it loads declarative page content,
// expands SEO keyword topics into landing pages and hands out immutable
// PageSpec copies to the site builder.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dtnitsch/sitegen/models"
	"gopkg.in/yaml.v3"
)

//go:embed content/site.yaml
var defaultContent []byte

// Document is the on-disk shape of a content file.
type Document struct {
	Site   models.SiteInfo   `yaml:"site"`
	Pages  []models.PageSpec `yaml:"pages"`
	Topics []Topic           `yaml:"seo_topics"`
}

// Catalog is an immutable set of page specs keyed by identifier.
type Catalog struct {
	site  models.SiteInfo
	specs []models.PageSpec // sorted by ID
	index map[string]int
}

// Default returns the catalog built from the embedded site content.
func Default() (*Catalog, error) {
	return Load(defaultContent)
}

// LoadFile reads a YAML content file and builds a catalog from it.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Load(data)
}

// Load parses a YAML content document and builds a catalog from it.
func Load(data []byte) (*Catalog, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	return New(doc.Site, doc.Pages, doc.Topics)
}

// New validates the given pages, expands every topic intent into a keyword
// page and returns the resulting catalog. All page-level problems are
// reported together as *models.PageError values joined into one error.
func New(site models.SiteInfo, pages []models.PageSpec, topics []Topic) (*Catalog, error) {
	byID := make(map[string]models.PageSpec, len(pages))
	var specs []models.PageSpec
	var errs []error

	add := func(spec models.PageSpec) {
		if _, dup := byID[spec.ID]; dup {
			errs = append(errs, &models.PageError{ID: spec.ID, Err: fmt.Errorf("duplicate page identifier")})
			return
		}
		if err := spec.Validate(); err != nil {
			errs = append(errs, &models.PageError{ID: spec.ID, Err: err})
			return
		}
		byID[spec.ID] = spec
		specs = append(specs, spec)
	}

	for _, p := range pages {
		spec := p.Clone()
		if spec.Kind == "" {
			spec.Kind = models.KindContent
		}
		add(spec)
	}

	for _, t := range topics {
		if t.Landing != "" {
			base, ok := byID[t.Landing]
			if !ok {
				errs = append(errs, fmt.Errorf("seo topic %q: landing page %q not found", t.BaseSlug, t.Landing))
				continue
			}
			t.Base = base.Clone()
		}
		for _, intent := range t.Intents {
			spec, err := ExpandKeyword(t, intent)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			add(spec)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	index := make(map[string]int, len(specs))
	for i, s := range specs {
		index[s.ID] = i
	}

	return &Catalog{site: site, specs: specs, index: index}, nil
}

// Site returns the site-wide context declared by the content document.
func (c *Catalog) Site() models.SiteInfo {
	return models.SiteInfo{}.Merge(c.site)
}

// Specs returns copies of every page spec, sorted by identifier.
func (c *Catalog) Specs() []models.PageSpec {
	out := make([]models.PageSpec, len(c.specs))
	for i, s := range c.specs {
		out[i] = s.Clone()
	}
	return out
}

// Lookup returns a copy of the spec with the given identifier.
func (c *Catalog) Lookup(id string) (models.PageSpec, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.PageSpec{}, false
	}
	return c.specs[i].Clone(), true
}

// Len returns the number of pages in the catalog.
func (c *Catalog) Len() int {
	return len(c.specs)
}
