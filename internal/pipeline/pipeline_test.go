package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/checks"
	"github.com/dtnitsch/sitegen/pkg/db"
	"github.com/dtnitsch/sitegen/pkg/report"
	"github.com/dtnitsch/sitegen/pkg/storage"
)

const scenarioContent = `site:
  name: Example
pages:
  - id: index
    title: Home
    description: Start page
    heading: Welcome
    links:
      - label: Services
        href: /services/
  - id: services
    title: Services
    description: What we do
    heading: Services
    links:
      - label: Gone
        href: /missing/
  - id: contact
    title: Home
    description: Get in touch
    heading: Contact
`

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(t *testing.T, content string) *models.SiteConfig {
	t.Helper()
	dir := t.TempDir()
	contentFile := filepath.Join(dir, "content.yaml")
	if err := os.WriteFile(contentFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := models.DefaultConfig()
	cfg.OutputDir = filepath.Join(dir, "dist")
	cfg.ContentFile = contentFile
	cfg.Assets.Stylesheet = filepath.Join(dir, "style.css")
	cfg.Assets.ImagesDir = filepath.Join(dir, "images")
	return cfg
}

func TestRun_Scenario(t *testing.T) {
	cfg := newTestConfig(t, scenarioContent)

	res, err := Run(context.Background(), newTestLogger(), cfg, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Report.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", res.Report.TotalPages)
	}
	if res.Report.BrokenLinks != 1 {
		t.Errorf("BrokenLinks = %d, want 1", res.Report.BrokenLinks)
	}
	if res.Report.DuplicateTitles != 1 {
		t.Errorf("DuplicateTitles = %d, want 1", res.Report.DuplicateTitles)
	}
	if res.Report.SitemapMismatches == nil || *res.Report.SitemapMismatches != 0 {
		t.Errorf("SitemapMismatches = %v, want 0", res.Report.SitemapMismatches)
	}
	if res.Report.RobotsBlocked == nil || *res.Report.RobotsBlocked != 0 {
		t.Errorf("RobotsBlocked = %v, want 0", res.Report.RobotsBlocked)
	}
	if len(res.Assets.Missing) != 2 {
		t.Errorf("Assets.Missing = %v, want stylesheet and images", res.Assets.Missing)
	}

	text, err := os.ReadFile(res.ReportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	for _, line := range []string{"total pages: 3\n", "broken links: 1\n", "duplicate titles: 1\n"} {
		if !strings.Contains(string(text), line) {
			t.Errorf("report missing %q:\n%s", line, text)
		}
	}

	doc, err := report.Read(&storage.Storage{}, cfg.OutputDir)
	if err != nil {
		t.Fatalf("report.Read() error = %v", err)
	}
	var broken []models.Finding
	for _, f := range doc.Findings {
		if f.Kind == models.FindingBrokenLink {
			broken = append(broken, f)
		}
	}
	if len(broken) != 1 || broken[0].Page != "/services/" || broken[0].Target != "/missing/" {
		t.Errorf("broken link findings = %+v", broken)
	}
}

func TestRun_StagesAssets(t *testing.T) {
	cfg := newTestConfig(t, scenarioContent)
	if err := os.WriteFile(cfg.Assets.Stylesheet, []byte("body{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.Assets.ImagesDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Assets.ImagesDir, "logo.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(context.Background(), newTestLogger(), cfg, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Assets.Images != 1 || len(res.Assets.Missing) != 0 {
		t.Errorf("Assets = %+v", res.Assets)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "style.css")); err != nil {
		t.Errorf("stylesheet not staged: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "images", "logo.png")); err != nil {
		t.Errorf("image not staged: %v", err)
	}
}

func TestRun_RecordsHistory(t *testing.T) {
	cfg := newTestConfig(t, scenarioContent)
	cfg.HistoryDB = filepath.Join(t.TempDir(), "history.db")

	first, err := Run(context.Background(), newTestLogger(), cfg, nil)
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := Run(context.Background(), newTestLogger(), cfg, nil)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if first.RunID == "" || second.RunID == "" || first.RunID == second.RunID {
		t.Fatalf("run ids = %q, %q", first.RunID, second.RunID)
	}

	database, err := db.Open(cfg.HistoryDB)
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != second.RunID {
		t.Errorf("ListRuns() = %+v", runs)
	}

	changed, err := database.ChangedPages(first.RunID, second.RunID)
	if err != nil {
		t.Fatalf("ChangedPages() error = %v", err)
	}
	if len(changed) != 0 {
		t.Errorf("rebuild changed pages: %+v", changed)
	}

	findings, err := database.GetRunFindings(second.RunID)
	if err != nil {
		t.Fatalf("GetRunFindings() error = %v", err)
	}
	if len(findings) != len(second.QA.Findings) {
		t.Errorf("stored %d findings, want %d", len(findings), len(second.QA.Findings))
	}
}

func TestRun_InvalidContent(t *testing.T) {
	cfg := newTestConfig(t, "pages:\n  - id: index\n    heading: no title\n")

	_, err := Run(context.Background(), newTestLogger(), cfg, nil)
	var pe *models.PageError
	if !errors.As(err, &pe) {
		t.Fatalf("Run() error = %v, want PageError", err)
	}
	if _, statErr := os.Stat(cfg.OutputDir); !os.IsNotExist(statErr) {
		t.Error("output root created for invalid content")
	}
}

func TestRun_OutputRootNotWritable(t *testing.T) {
	cfg := newTestConfig(t, scenarioContent)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.OutputDir = filepath.Join(blocker, "dist")

	_, err := Run(context.Background(), newTestLogger(), cfg, nil)
	if !errors.Is(err, models.ErrOutputRoot) {
		t.Errorf("Run() error = %v, want ErrOutputRoot", err)
	}
}

const siteContextContent = `site:
  name: Shop
  base_url: https://shop.example.org/
  lang: en
pages:
  - id: index
    title: Home
    heading: Welcome
`

func TestRun_SiteContext(t *testing.T) {
	tests := []struct {
		name        string
		override    models.SiteInfo
		wantBaseURL string
		wantLang    string
	}{
		{"content values", models.SiteInfo{}, "https://shop.example.org", "en"},
		{"config overrides content", models.SiteInfo{BaseURL: "https://www.example.net", Lang: "fr"}, "https://www.example.net", "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t, siteContextContent)
			cfg.Site = tt.override

			res, err := Run(context.Background(), newTestLogger(), cfg, nil)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if res.Site.BaseURL != tt.wantBaseURL || res.Site.Lang != tt.wantLang {
				t.Errorf("Site = %+v", res.Site)
			}

			page, err := os.ReadFile(filepath.Join(cfg.OutputDir, models.IndexFile))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(page), `<html lang="`+tt.wantLang+`">`) {
				t.Errorf("page does not declare lang %q:\n%s", tt.wantLang, page)
			}
			if !strings.Contains(string(page), tt.wantBaseURL+"/") {
				t.Errorf("canonical does not use %q", tt.wantBaseURL)
			}

			sm, err := os.ReadFile(filepath.Join(cfg.OutputDir, models.SitemapFile))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(sm), "<loc>"+tt.wantBaseURL+"/</loc>") {
				t.Errorf("sitemap does not use %q:\n%s", tt.wantBaseURL, sm)
			}
			robots, err := os.ReadFile(filepath.Join(cfg.OutputDir, models.RobotsFile))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(robots), "Sitemap: "+tt.wantBaseURL+"/sitemap.xml") {
				t.Errorf("robots.txt = %q", robots)
			}
		})
	}
}

func TestRun_SiteContextDefaults(t *testing.T) {
	cfg := newTestConfig(t, scenarioContent)

	res, err := Run(context.Background(), newTestLogger(), cfg, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Site.BaseURL != models.DefaultBaseURL || res.Site.Lang != models.DefaultLang {
		t.Errorf("Site = %+v, want defaults", res.Site)
	}
}

func TestRun_InvalidContentBaseURL(t *testing.T) {
	cfg := newTestConfig(t, "site:\n  base_url: ftp://files.example.com\npages:\n  - id: index\n    title: Home\n    heading: Hi\n")

	_, err := Run(context.Background(), newTestLogger(), cfg, nil)
	if !errors.Is(err, models.ErrContent) {
		t.Errorf("Run() error = %v, want ErrContent", err)
	}
}

func TestRun_LanguageDetector(t *testing.T) {
	cfg := newTestConfig(t, scenarioContent)

	res, err := Run(context.Background(), newTestLogger(), cfg, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.QA.Ran.Language || res.Report.LanguageMismatches != nil {
		t.Error("language check ran without a detector")
	}

	detector, err := checks.NewLanguageDetector([]string{"de", "en"})
	if err != nil {
		t.Fatal(err)
	}
	res, err = Run(context.Background(), newTestLogger(), cfg, detector)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.QA.Ran.Language || res.Report.LanguageMismatches == nil {
		t.Error("language check did not run with the given detector")
	}
}
