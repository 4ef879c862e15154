package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs table: one row per build+QA run with the report counts
CREATE TABLE IF NOT EXISTS runs (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL UNIQUE,          -- uuid
    started_at TIMESTAMP NOT NULL,
    output_dir TEXT NOT NULL,

    total_pages INTEGER DEFAULT 0,
    broken_links INTEGER DEFAULT 0,
    duplicate_titles INTEGER DEFAULT 0,
    duplicate_descriptions INTEGER DEFAULT 0,
    thin_pages INTEGER DEFAULT 0,
    parse_warnings INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

-- Pages written by a run, with the sha256 of the emitted HTML
CREATE TABLE IF NOT EXISTS run_pages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    page_path TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    size_bytes INTEGER DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, page_path)
);

CREATE INDEX IF NOT EXISTS idx_run_pages_run ON run_pages(run_id);

-- QA findings of a run, in report order
CREATE TABLE IF NOT EXISTS run_findings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    kind TEXT NOT NULL,                   -- broken_link, duplicate_title, ...
    page TEXT,
    target TEXT,
    value TEXT,
    count INTEGER DEFAULT 0,
    detail TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_findings_run ON run_findings(run_id);
CREATE INDEX IF NOT EXISTS idx_run_findings_kind ON run_findings(kind);
`
