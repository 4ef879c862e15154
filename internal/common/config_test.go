package common

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args []string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("config", "", "")
	set.String("output-dir", "dist", "")
	set.String("base-url", "", "")
	set.Int("workers", 4, "")
	set.Int("thin-threshold", 200, "")
	if err := set.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := ResolveConfig(newContext(t, nil))
	if err != nil {
		t.Fatalf("ResolveConfig() error = %v", err)
	}
	if cfg.OutputDir != "dist" || cfg.WorkerCount != 4 || cfg.QA.ThinThreshold != 200 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Site.BaseURL != "" || cfg.Site.Lang != "" {
		t.Errorf("Site = %+v, want empty so content values apply", cfg.Site)
	}
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	content := `
output_dir: public
workers: 8
site:
  base_url: https://file.example.com/
qa:
  thin_threshold: 150
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ResolveConfig(newContext(t, []string{"--config", path, "--workers", "2"}))
	if err != nil {
		t.Fatalf("ResolveConfig() error = %v", err)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("OutputDir = %q, want file value %q", cfg.OutputDir, "public")
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("WorkerCount = %d, want flag value 2", cfg.WorkerCount)
	}
	if cfg.QA.ThinThreshold != 150 {
		t.Errorf("ThinThreshold = %d, want 150", cfg.QA.ThinThreshold)
	}
	if cfg.Site.BaseURL != "https://file.example.com" {
		t.Errorf("Site.BaseURL = %q", cfg.Site.BaseURL)
	}
}

func TestResolveConfig_InvalidBaseURL(t *testing.T) {
	if _, err := ResolveConfig(newContext(t, []string{"--base-url", "not a url"})); err == nil {
		t.Error("ResolveConfig() expected error for invalid base URL")
	}
}

func TestResolveConfig_ThinThreshold(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{"default", nil, 200, false},
		{"flag", []string{"--thin-threshold", "50"}, 50, false},
		{"zero", []string{"--thin-threshold", "0"}, 0, true},
		{"negative", []string{"--thin-threshold", "-5"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ResolveConfig(newContext(t, tt.args))
			if tt.wantErr {
				if err == nil {
					t.Errorf("ResolveConfig() expected error, got ThinThreshold %d", cfg.QA.ThinThreshold)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveConfig() error = %v", err)
			}
			if cfg.QA.ThinThreshold != tt.want {
				t.Errorf("ThinThreshold = %d, want %d", cfg.QA.ThinThreshold, tt.want)
			}
		})
	}
}

func TestResolveConfig_NegativeThinThresholdInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	if err := os.WriteFile(path, []byte("qa:\n  thin_threshold: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ResolveConfig(newContext(t, []string{"--config", path})); err == nil {
		t.Error("ResolveConfig() expected error for negative thin_threshold")
	}
}
