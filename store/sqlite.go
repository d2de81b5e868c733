// Package store persists crawled pages in their canonical JSON form.
// One row per page URL; the payload column carries the lossy canonical
// serialization, and reads rebuild pages through the same contract.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gaurav-prasanna/crawlpage/page"
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	url       TEXT PRIMARY KEY,
	code      INTEGER NOT NULL,
	depth     INTEGER NOT NULL,
	fetched   INTEGER NOT NULL,
	payload   TEXT NOT NULL,
	stored_at TEXT NOT NULL
);
`

// SQLite is a page store backed by a single SQLite database file.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the database at path and initializes the schema.
// The parent directory is created if missing.
func Open(path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating pages schema: %w", err)
	}

	return &SQLite{db: db, logger: logger}, nil
}

// Save upserts the page keyed by its URL. Pages flagged non-storable are
// skipped without error; the flag is a hint from the producer, not a fault.
func (s *SQLite) Save(p *page.Page) error {
	if !p.Storable {
		s.logger.Debug("skipping non-storable page", "url", p.URL.String())
		return nil
	}

	payload, err := p.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing page: %w", err)
	}

	fetched := 0
	if p.Fetched() {
		fetched = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO pages (url, code, depth, fetched, payload, stored_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			code = excluded.code,
			depth = excluded.depth,
			fetched = excluded.fetched,
			payload = excluded.payload,
			stored_at = excluded.stored_at`,
		p.URL.String(), p.Code, p.Depth, fetched, string(payload),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving page %s: %w", p.URL, err)
	}
	s.logger.Debug("saved page", "url", p.URL.String(), "code", p.Code)
	return nil
}

// Get reconstructs the stored page for rawURL.
func (s *SQLite) Get(rawURL string) (*page.Page, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM pages WHERE url = ?`, rawURL).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("page %s not found", rawURL)
	}
	if err != nil {
		return nil, fmt.Errorf("loading page %s: %w", rawURL, err)
	}

	p, err := page.FromJSON([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("reconstructing page %s: %w", rawURL, err)
	}
	return p, nil
}

// URLs lists all stored page URLs in lexical order.
func (s *SQLite) URLs() ([]string, error) {
	rows, err := s.db.Query(`SELECT url FROM pages ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scanning page row: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
