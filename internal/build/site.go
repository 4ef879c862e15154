package build

import (
	"fmt"
	"path/filepath"

	"github.com/dtnitsch/sitegen/internal/common"
	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/catalog"
	"github.com/dtnitsch/sitegen/pkg/renderer"
)

// Site is a loaded content catalog with its resolved site context.
type Site struct {
	Catalog  *catalog.Catalog
	Renderer *renderer.Renderer
	// Info is the content document's site block overridden by config and
	// flag values, with defaults for anything still empty.
	Info models.SiteInfo
}

// LoadSite reads the content catalog named by cfg (the embedded default
// when none is set) and prepares a renderer for its site context.
func LoadSite(cfg *models.SiteConfig) (*Site, error) {
	var cat *catalog.Catalog
	var err error
	if cfg.ContentFile != "" {
		cat, err = catalog.LoadFile(cfg.ContentFile)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrContent, err)
	}

	info := cat.Site().Merge(cfg.Site).WithDefaults()
	info.BaseURL, err = common.ValidateBaseURL(info.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrContent, err)
	}

	r, err := renderer.New(info, renderer.WithStylesheet(stylesheetHref(cfg.Assets.Stylesheet)))
	if err != nil {
		return nil, err
	}
	return &Site{Catalog: cat, Renderer: r, Info: info}, nil
}

func stylesheetHref(stylesheet string) string {
	if stylesheet == "" {
		return ""
	}
	return "/" + filepath.Base(stylesheet)
}
