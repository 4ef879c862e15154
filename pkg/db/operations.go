package db

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/dtnitsch/sitegen/models"
	"github.com/google/uuid"
)

// Run is one recorded build+QA run.
type Run struct {
	RunID     string
	StartedAt time.Time
	OutputDir string
	Report    models.BuildReport
}

// RunPage is the hash of one page emitted by a run.
type RunPage struct {
	Path      string
	Hash      string
	SizeBytes int64
}

// PageChange describes how a page differs between two runs.
type PageChange struct {
	Path   string
	Change string // added, removed, changed
}

// InsertRun records a run and returns its generated run id.
func (db *DB) InsertRun(startedAt time.Time, outputDir string, r models.BuildReport) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO runs (run_id, started_at, output_dir, total_pages, broken_links,
		                  duplicate_titles, duplicate_descriptions, thin_pages, parse_warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, startedAt.UTC(), outputDir, r.TotalPages, r.BrokenLinks,
		r.DuplicateTitles, r.DuplicateDescriptions, r.ThinPages, r.ParseWarnings)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// InsertRunPages stores page hashes for a run in a single transaction.
func (db *DB) InsertRunPages(runID string, pages []RunPage) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO run_pages (run_id, page_path, content_hash, size_bytes)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pages {
		if _, err := stmt.Exec(runID, p.Path, p.Hash, p.SizeBytes); err != nil {
			return fmt.Errorf("failed to insert page %s: %w", p.Path, err)
		}
	}
	return tx.Commit()
}

// InsertRunFindings stores the findings of a run in report order.
func (db *DB) InsertRunFindings(runID string, findings []models.Finding) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO run_findings (run_id, kind, page, target, value, count, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare finding insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range findings {
		if _, err := stmt.Exec(runID, string(f.Kind), NewNullString(f.Page), NewNullString(f.Target),
			NewNullString(f.Value), f.Count, NewNullString(f.Detail)); err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}
	return tx.Commit()
}

const runColumns = `run_id, started_at, output_dir, total_pages, broken_links,
	duplicate_titles, duplicate_descriptions, thin_pages, parse_warnings`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	err := row.Scan(&r.RunID, &r.StartedAt, &r.OutputDir, &r.Report.TotalPages, &r.Report.BrokenLinks,
		&r.Report.DuplicateTitles, &r.Report.DuplicateDescriptions, &r.Report.ThinPages, &r.Report.ParseWarnings)
	return r, err
}

// ListRuns returns runs ordered by most recent first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY seq DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun retrieves a run by id.
func (db *DB) GetRun(runID string) (*Run, error) {
	r, err := scanRun(db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// GetRunFindings retrieves the findings of a run in the order they were stored.
func (db *DB) GetRunFindings(runID string) ([]models.Finding, error) {
	rows, err := db.Query(`
		SELECT kind, page, target, value, count, detail
		FROM run_findings
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run findings: %w", err)
	}
	defer rows.Close()

	var findings []models.Finding
	for rows.Next() {
		var f models.Finding
		var kind string
		var page, target, value, detail sql.NullString
		if err := rows.Scan(&kind, &page, &target, &value, &f.Count, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		f.Kind = models.FindingKind(kind)
		f.Page = page.String
		f.Target = target.String
		f.Value = value.String
		f.Detail = detail.String
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// GetRunPages retrieves page hashes of a run keyed by page path.
func (db *DB) GetRunPages(runID string) (map[string]RunPage, error) {
	rows, err := db.Query(`
		SELECT page_path, content_hash, size_bytes
		FROM run_pages
		WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run pages: %w", err)
	}
	defer rows.Close()

	pages := make(map[string]RunPage)
	for rows.Next() {
		var p RunPage
		if err := rows.Scan(&p.Path, &p.Hash, &p.SizeBytes); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages[p.Path] = p
	}
	return pages, rows.Err()
}

// ChangedPages compares the page hashes of two runs. An empty result means
// the second run emitted a byte-identical tree.
func (db *DB) ChangedPages(oldRunID, newRunID string) ([]PageChange, error) {
	before, err := db.GetRunPages(oldRunID)
	if err != nil {
		return nil, err
	}
	after, err := db.GetRunPages(newRunID)
	if err != nil {
		return nil, err
	}

	var changes []PageChange
	for path, p := range after {
		old, ok := before[path]
		switch {
		case !ok:
			changes = append(changes, PageChange{Path: path, Change: "added"})
		case old.Hash != p.Hash:
			changes = append(changes, PageChange{Path: path, Change: "changed"})
		}
	}
	for path := range before {
		if _, ok := after[path]; !ok {
			changes = append(changes, PageChange{Path: path, Change: "removed"})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}

// NewNullString maps an empty string to SQL NULL.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
