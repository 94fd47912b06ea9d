package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Analyses: one row per analyzed URL, summary fields only.
-- Full report payloads (preview, top terms) stay with the caller.
CREATE TABLE IF NOT EXISTS analyses (
    analysis_id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    status TEXT NOT NULL,
    error_type TEXT,
    title TEXT,
    word_count INTEGER NOT NULL DEFAULT 0,
    sentence_count INTEGER NOT NULL DEFAULT 0,
    readability REAL NOT NULL DEFAULT 0,
    is_thin BOOLEAN NOT NULL DEFAULT 0,
    quality TEXT,
    language TEXT,
    content_hash TEXT,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_analyses_url ON analyses(url);
CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_analyses_quality ON analyses(quality);

-- Similar pages: the ranked matches recorded with each analysis
CREATE TABLE IF NOT EXISTS similar_pages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    analysis_id TEXT NOT NULL,
    rank INTEGER NOT NULL,
    url TEXT NOT NULL,
    similarity REAL NOT NULL,
    word_count INTEGER NOT NULL DEFAULT 0,
    quality TEXT,
    FOREIGN KEY (analysis_id) REFERENCES analyses(analysis_id) ON DELETE CASCADE,
    UNIQUE(analysis_id, rank)
);

CREATE INDEX IF NOT EXISTS idx_similar_analysis ON similar_pages(analysis_id);
`
