// Package models defines data structures for configuration, page content,
// extracted page facts and QA findings.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir     = "dist"
	DefaultBaseURL       = "https://example.com"
	DefaultLang          = "de"
	DefaultWorkerCount   = 4
	DefaultStylesheet    = "style.css"
	DefaultImagesDir     = "images"
	DefaultThinThreshold = 200 // visible-text characters; pages below this are thin
)

// SiteInfo is the site-wide context every rendered page shares.
type SiteInfo struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	Lang    string `yaml:"lang"`
	Footer  string `yaml:"footer"`
	Nav     []Link `yaml:"nav"`
}

// AssetConfig names the collaborator inputs staged into the output root.
type AssetConfig struct {
	Stylesheet string `yaml:"stylesheet"`
	ImagesDir  string `yaml:"images"`
}

// QAConfig holds the tunables of the post-build verification pass.
type QAConfig struct {
	ThinThreshold int      `yaml:"thin_threshold"`
	LanguageCheck bool     `yaml:"language_check"`
	Languages     []string `yaml:"languages"` // ISO-639-1 candidates for detection
}

// SiteConfig holds runtime configuration for build and QA runs.
// Values come from an optional YAML file; CLI flags override them.
type SiteConfig struct {
	Site        SiteInfo    `yaml:"site"`
	OutputDir   string      `yaml:"output_dir"`
	ContentFile string      `yaml:"content_file"` // empty = embedded default content
	WorkerCount int         `yaml:"workers"`
	Assets      AssetConfig `yaml:"assets"`
	QA          QAConfig    `yaml:"qa"`
	HistoryDB   string      `yaml:"history_db"` // empty disables the run ledger
}

// LoadConfig reads a YAML config file and applies defaults.
func LoadConfig(path string) (*SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.QA.ThinThreshold < 0 {
		return nil, fmt.Errorf("config %s: thin_threshold must not be negative, got %d", path, cfg.QA.ThinThreshold)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// DefaultConfig returns a config with every default filled in.
func DefaultConfig() *SiteConfig {
	cfg := &SiteConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with the documented defaults. Site is left
// empty so values declared by the content document are not overridden.
func (c *SiteConfig) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = DefaultWorkerCount
	}
	if c.Assets.Stylesheet == "" {
		c.Assets.Stylesheet = DefaultStylesheet
	}
	if c.Assets.ImagesDir == "" {
		c.Assets.ImagesDir = DefaultImagesDir
	}
	if c.QA.ThinThreshold <= 0 {
		c.QA.ThinThreshold = DefaultThinThreshold
	}
	if len(c.QA.Languages) == 0 {
		c.QA.Languages = []string{"de", "en"}
	}
}
