package common

import (
	"fmt"

	"github.com/dtnitsch/sitegen/models"
	"github.com/urfave/cli/v2"
)

// ResolveConfig loads --config when given and applies every flag the user
// set explicitly on top of the file values.
func ResolveConfig(c *cli.Context) (*models.SiteConfig, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("output-dir") || cfg.OutputDir == "" {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("base-url") {
		cfg.Site.BaseURL = c.String("base-url")
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("content") {
		cfg.ContentFile = c.String("content")
	}
	if c.IsSet("thin-threshold") {
		if c.Int("thin-threshold") <= 0 {
			return nil, fmt.Errorf("thin-threshold must be positive, got %d", c.Int("thin-threshold"))
		}
		cfg.QA.ThinThreshold = c.Int("thin-threshold")
	}
	if c.IsSet("language-check") {
		cfg.QA.LanguageCheck = c.Bool("language-check")
	}
	if c.IsSet("stylesheet") {
		cfg.Assets.Stylesheet = c.String("stylesheet")
	}
	if c.IsSet("images") {
		cfg.Assets.ImagesDir = c.String("images")
	}
	if c.IsSet("history-db") {
		cfg.HistoryDB = c.String("history-db")
	}
	cfg.ApplyDefaults()

	// An empty base URL defers to the content document or the default.
	if cfg.Site.BaseURL != "" {
		baseURL, err := ValidateBaseURL(cfg.Site.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		cfg.Site.BaseURL = baseURL
	}

	return cfg, nil
}
