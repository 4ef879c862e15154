package db

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dtnitsch/sitegen/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// every pooled connection would get its own empty :memory: database
	database.SetMaxOpenConns(1)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report := models.BuildReport{TotalPages: 13, BrokenLinks: 1, DuplicateTitles: 2, ThinPages: 3}

	runID, err := db.InsertRun(started, "dist", report)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if runID == "" {
		t.Fatal("InsertRun() returned empty run id")
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.OutputDir != "dist" {
		t.Errorf("run.OutputDir = %q, want %q", run.OutputDir, "dist")
	}
	if !run.StartedAt.Equal(started) {
		t.Errorf("run.StartedAt = %v, want %v", run.StartedAt, started)
	}
	if !reflect.DeepEqual(run.Report, report) {
		t.Errorf("run.Report = %+v, want %+v", run.Report, report)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetRun("does-not-exist"); err == nil {
		t.Error("GetRun() expected error for unknown run")
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	now := time.Now()
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := db.InsertRun(now, "dist", models.BuildReport{TotalPages: i})
		if err != nil {
			t.Fatalf("InsertRun() error = %v", err)
		}
		ids = append(ids, id)
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "all, newest first", limit: 0, want: []string{ids[2], ids[1], ids[0]}},
		{name: "limited", limit: 2, want: []string{ids[2], ids[1]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := db.ListRuns(tt.limit)
			if err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}
			var got []string
			for _, r := range runs {
				got = append(got, r.RunID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListRuns(%d) = %v, want %v", tt.limit, got, tt.want)
			}
		})
	}
}

func TestRunFindings(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun(time.Now(), "dist", models.BuildReport{})
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	findings := []models.Finding{
		models.BrokenLink("/services/", "/missing/"),
		{Kind: models.FindingDuplicateTitle, Value: "Home", Count: 2},
		models.ThinContent("/login/", 40),
		{Kind: models.FindingLanguageMismatch, Page: "/en/", Detail: "declared de, detected en"},
	}
	if err := db.InsertRunFindings(runID, findings); err != nil {
		t.Fatalf("InsertRunFindings() error = %v", err)
	}

	got, err := db.GetRunFindings(runID)
	if err != nil {
		t.Fatalf("GetRunFindings() error = %v", err)
	}
	// Length and Pages are not persisted
	want := []models.Finding{
		findings[0],
		findings[1],
		{Kind: models.FindingThinContent, Page: "/login/"},
		findings[3],
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetRunFindings() = %+v, want %+v", got, want)
	}
}

func TestRunFindings_UnknownRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := db.InsertRunFindings("missing-run", []models.Finding{models.BrokenLink("/", "/x/")})
	if err == nil {
		t.Error("InsertRunFindings() expected foreign key error for unknown run")
	}
}

func TestChangedPages(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first, _ := db.InsertRun(time.Now(), "dist", models.BuildReport{})
	second, _ := db.InsertRun(time.Now(), "dist", models.BuildReport{})
	third, _ := db.InsertRun(time.Now(), "dist", models.BuildReport{})

	pages := []RunPage{{Path: "/", Hash: "aa", SizeBytes: 10}, {Path: "/services/", Hash: "bb", SizeBytes: 20}}
	for _, id := range []string{first, second} {
		if err := db.InsertRunPages(id, pages); err != nil {
			t.Fatalf("InsertRunPages() error = %v", err)
		}
	}
	if err := db.InsertRunPages(third, []RunPage{{Path: "/", Hash: "cc"}, {Path: "/preise/", Hash: "dd"}}); err != nil {
		t.Fatalf("InsertRunPages() error = %v", err)
	}

	same, err := db.ChangedPages(first, second)
	if err != nil {
		t.Fatalf("ChangedPages() error = %v", err)
	}
	if len(same) != 0 {
		t.Errorf("ChangedPages() for identical runs = %+v, want none", same)
	}

	diff, err := db.ChangedPages(second, third)
	if err != nil {
		t.Fatalf("ChangedPages() error = %v", err)
	}
	want := []PageChange{
		{Path: "/", Change: "changed"},
		{Path: "/preise/", Change: "added"},
		{Path: "/services/", Change: "removed"},
	}
	if !reflect.DeepEqual(diff, want) {
		t.Errorf("ChangedPages() = %+v, want %+v", diff, want)
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := db.InsertRun(time.Now(), "dist", models.BuildReport{}); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	_ = db.Close()

	// reopening must not re-run the schema over existing data
	db, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer db.Close()
	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("len(runs) = %d, want 1", len(runs))
	}
	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
}
