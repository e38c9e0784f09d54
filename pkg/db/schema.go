package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Builds table: one row per page build attempt
CREATE TABLE IF NOT EXISTS builds (
    build_id INTEGER PRIMARY KEY AUTOINCREMENT,
    page TEXT NOT NULL,
    namespace TEXT NOT NULL,
    status TEXT NOT NULL,             -- success, failed
    error TEXT,
    bundle_bytes INTEGER DEFAULT 0,
    linked_bytes INTEGER DEFAULT 0,
    standalone_bytes INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_builds_page ON builds(page);
CREATE INDEX IF NOT EXISTS idx_builds_created ON builds(created_at);
`
