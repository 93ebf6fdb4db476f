package db

import "database/sql"

// MigrateUp creates the articles table and supporting indexes if they do not
// already exist. The schema is a single self-contained table; listings only
// ever order by created_at, so that is the only secondary index.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id         BIGSERIAL PRIMARY KEY,
    title      TEXT NOT NULL,
    body       TEXT NOT NULL,
    images     TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// Used by every listing query (ORDER BY created_at DESC)
	if _, err := db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC)`); err != nil {
		return err
	}

	return nil
}
