package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL,
	name TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	icon TEXT NOT NULL DEFAULT '',
	logo_url TEXT NOT NULL DEFAULT '',
	UNIQUE (category, name)
);
`

// Store persists a catalog in SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// OpenStore opens (creating if needed) the catalog database at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	log.Debug(log.CatCatalog, "Opening catalog store", "path", dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		log.ErrorErr(log.CatCatalog, "Failed to open catalog store", err, "path", dbPath)
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		log.ErrorErr(log.CatCatalog, "Failed to create catalog schema", err, "path", dbPath)
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}

	log.Info(log.CatCatalog, "Opened catalog store", "path", dbPath)
	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Import upserts every candidate of c and returns how many rows were written.
// Existing entries keep their position and take the new title and icon.
func (s *Store) Import(ctx context.Context, c Catalog) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO candidates (category, name, title, icon, logo_url)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (category, name) DO UPDATE SET
			title = excluded.title,
			icon = excluded.icon,
			logo_url = excluded.logo_url`)
	if err != nil {
		return 0, fmt.Errorf("preparing import: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	n := 0
	c = c.Normalize()
	for _, cat := range completion.Categories() {
		for _, cand := range c.Get(cat) {
			if _, err := stmt.ExecContext(ctx, string(cat), cand.Name, cand.Title, cand.Icon, cand.LogoURL); err != nil {
				return 0, fmt.Errorf("importing %s %q: %w", cat, cand.Name, err)
			}
			n++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	log.Info(log.CatCatalog, "Imported catalog", "path", s.dbPath, "candidates", n)
	return n, nil
}

// List returns the candidates of one category in insertion order.
func (s *Store) List(ctx context.Context, cat completion.Category) ([]completion.Candidate, error) {
	if _, err := ParseCategory(string(cat)); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, title, icon, logo_url
		FROM candidates
		WHERE category = ?
		ORDER BY id`, string(cat))
	if err != nil {
		log.ErrorErr(log.CatCatalog, "List query failed", err, "category", cat)
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []completion.Candidate
	for rows.Next() {
		var cand completion.Candidate
		if err := rows.Scan(&cand.Name, &cand.Title, &cand.Icon, &cand.LogoURL); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		out = append(out, cand)
	}
	return out, rows.Err()
}

// Load reads the whole stored catalog.
func (s *Store) Load(ctx context.Context) (Catalog, error) {
	var c Catalog
	for _, cat := range completion.Categories() {
		cands, err := s.List(ctx, cat)
		if err != nil {
			return Catalog{}, err
		}
		if err := c.Add(cat, cands...); err != nil {
			return Catalog{}, err
		}
	}
	return c, nil
}

// Delete removes one candidate and reports whether it existed. The name is
// normalized like Import does, so "admin" removes the stored "#admin".
func (s *Store) Delete(ctx context.Context, cat completion.Category, name string) (bool, error) {
	name = NormalizeName(cat, name)
	if name == "" {
		return false, nil
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM candidates WHERE category = ? AND name = ?`, string(cat), name)
	if err != nil {
		return false, fmt.Errorf("deleting candidate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
