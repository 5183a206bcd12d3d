// Package db mirrors the vocalization table into an in-memory SQLite
// database so it can be queried live from the /debug/ pages. The mirror is
// written once before the server starts and only read afterwards.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/acoustic.space/internal/dataset"
	"github.com/banshee-data/acoustic.space/internal/monitoring"
)

// DSN of the private in-memory database.
const DSN = ":memory:"

type DB struct {
	*sql.DB
}

// OpenDB opens an empty in-memory database. A single connection is kept so
// every query sees the same memory database.
func OpenDB() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}
	return &DB{sqlDB}, nil
}

// NewMirror opens a database, applies the schema migrations and copies t
// into the vocalizations table.
func NewMirror(t *dataset.Table) (*DB, error) {
	db, err := OpenDB()
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.Populate(t); err != nil {
		db.Close()
		return nil, err
	}
	monitoring.Logf("mirrored %d vocalizations into sqlite", t.Len())
	return db, nil
}

// Populate inserts every row of t inside one transaction.
func (db *DB) Populate(t *dataset.Table) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO vocalizations (
			row_id, umap_1, umap_2, umap_3,
			subject, context, context_complet, context_general,
			valence, general_arousal, valence_arousal_refined,
			age_class, playback, file, has_audio, has_image
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var insertErr error
	t.Each(func(i int, r dataset.Record) bool {
		_, insertErr = stmt.Exec(
			i, r.UMAP1, r.UMAP2, r.UMAP3,
			r.Subject, r.Context, r.ContextComplet, r.ContextGeneral,
			r.Valence, r.GeneralArousal, r.ValenceArousalRefined,
			r.AgeClass, r.Playback, r.File, r.HasAudio, r.HasImage,
		)
		if insertErr != nil {
			insertErr = fmt.Errorf("failed to insert row %d: %w", i, insertErr)
			return false
		}
		return true
	})
	if insertErr != nil {
		return insertErr
	}
	return tx.Commit()
}

// CategoryCount is one row of the category_counts view.
type CategoryCount struct {
	Category  string `json:"category"`
	Calls     int    `json:"calls"`
	WithAudio int    `json:"with_audio"`
	WithImage int    `json:"with_image"`
	Subjects  int    `json:"subjects"`
}

// CategoryCounts reads the per valence-arousal class totals.
func (db *DB) CategoryCounts() ([]CategoryCount, error) {
	rows, err := db.Query(`
		SELECT category, calls, with_audio, with_image, subjects
		FROM category_counts
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Calls, &c.WithAudio, &c.WithImage, &c.Subjects); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
