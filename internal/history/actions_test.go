package history

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/db"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func insertRun(t *testing.T, database *db.DB, pages []db.RunPage, findings []models.Finding) string {
	t.Helper()
	runID, err := database.InsertRun(time.Now(), "dist", models.BuildReport{TotalPages: len(pages)})
	if err != nil {
		t.Fatal(err)
	}
	if err := database.InsertRunPages(runID, pages); err != nil {
		t.Fatal(err)
	}
	if err := database.InsertRunFindings(runID, findings); err != nil {
		t.Fatal(err)
	}
	return runID
}

func TestPrintRuns(t *testing.T) {
	database := setupTestDB(t)

	var buf bytes.Buffer
	if err := printRuns(&buf, database, 10); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No runs found") {
		t.Errorf("empty ledger output = %q", buf.String())
	}

	first := insertRun(t, database, []db.RunPage{{Path: "/", Hash: "a"}}, nil)
	second := insertRun(t, database, []db.RunPage{{Path: "/", Hash: "a"}}, nil)

	buf.Reset()
	if err := printRuns(&buf, database, 1); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, second) || strings.Contains(out, first) {
		t.Errorf("limit 1 should list only the latest run:\n%s", out)
	}
	if !strings.Contains(out, "Total: 1 runs") {
		t.Errorf("missing total line:\n%s", out)
	}
}

func TestPrintRun(t *testing.T) {
	database := setupTestDB(t)
	runID := insertRun(t, database, []db.RunPage{{Path: "/", Hash: "a"}}, []models.Finding{
		models.BrokenLink("/services/", "/missing/"),
		models.DuplicateTitle("Home", []string{"/", "/kontakt/"}),
	})

	for _, arg := range []string{runID, "latest"} {
		t.Run(arg, func(t *testing.T) {
			var buf bytes.Buffer
			if err := printRun(&buf, database, arg); err != nil {
				t.Fatalf("printRun() error = %v", err)
			}
			out := buf.String()
			for _, want := range []string{runID, "/missing/", `"Home" x2`, "Total: 2 findings"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestPrintRun_Unknown(t *testing.T) {
	database := setupTestDB(t)
	if err := printRun(&bytes.Buffer{}, database, "nope"); err == nil {
		t.Error("expected error for unknown run")
	}
	if err := printRun(&bytes.Buffer{}, database, "latest"); err == nil {
		t.Error("expected error for latest on empty ledger")
	}
}

func TestPrintDiff(t *testing.T) {
	database := setupTestDB(t)
	insertRun(t, database, []db.RunPage{{Path: "/", Hash: "a"}, {Path: "/old/", Hash: "o"}}, nil)

	if err := printDiff(&bytes.Buffer{}, database); err == nil {
		t.Error("expected error with a single run")
	}

	insertRun(t, database, []db.RunPage{{Path: "/", Hash: "b"}, {Path: "/new/", Hash: "n"}}, nil)

	var buf bytes.Buffer
	if err := printDiff(&buf, database); err != nil {
		t.Fatalf("printDiff() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"changed  /\n", "added    /new/\n", "removed  /old/\n", "Total: 3 changed pages"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
