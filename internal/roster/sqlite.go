package roster

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
)

const officialsSchema = `
CREATE TABLE IF NOT EXISTS officials (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	email    TEXT NOT NULL,
	position TEXT NOT NULL,
	district TEXT NOT NULL,
	tags     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_officials_district ON officials(district);
`

// SQLiteRepository serves the roster from an embedded SQLite database
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the roster database and applies
// the schema
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster database: %w", err)
	}

	// The driver serializes access; a single connection avoids
	// SQLITE_BUSY under concurrent lookups.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec(officialsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply roster schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Seed inserts officials that are not already present
func (r *SQLiteRepository) Seed(ctx context.Context, officials []*official.Official) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO officials (id, name, email, position, district, tags)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer stmt.Close()

	for _, o := range officials {
		if _, err := stmt.ExecContext(ctx, o.ID, o.Name, o.Email, o.Position, o.District, strings.Join(o.Tags, ",")); err != nil {
			return fmt.Errorf("failed to seed official %s: %w", o.ID, err)
		}
	}
	return tx.Commit()
}

// List retrieves officials matching the filter
func (r *SQLiteRepository) List(ctx context.Context, filter official.Filter) ([]*official.Official, error) {
	query := `SELECT id, name, email, position, district, tags FROM officials`
	var args []interface{}
	if filter.District != "" {
		query += ` WHERE district = ?`
		args = append(args, filter.District)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query officials: %w", err)
	}
	defer rows.Close()

	var out []*official.Official
	for rows.Next() {
		var o official.Official
		var tags string
		if err := rows.Scan(&o.ID, &o.Name, &o.Email, &o.Position, &o.District, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan official: %w", err)
		}
		if tags != "" {
			o.Tags = strings.Split(tags, ",")
		}
		// Tag filtering happens here; tags are stored denormalized
		if filter.Tag != "" && !o.HasTag(filter.Tag) {
			continue
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
