package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lanepos/register/internal/domain"
)

// Store persists catalog snapshots in a local SQLite database so the register
// can keep searching while the backend is unreachable. It implements
// domain.CatalogStore.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the snapshot database at the given path.
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping snapshot database: %w", err)
	}

	// WAL keeps reads cheap while a snapshot refresh is being written
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			barcode TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL DEFAULT 0,
			stock_quantity INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS snapshot_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// SaveSnapshot replaces the stored snapshot with the given product list.
func (s *Store) SaveSnapshot(ctx context.Context, products []domain.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear old snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, name, category, barcode, price, stock_quantity)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Category, p.Barcode, p.Price, p.StockQuantity); err != nil {
			return fmt.Errorf("failed to insert product %d: %w", p.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (key, value) VALUES ('saved_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record snapshot time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored product list in catalog order, or
// domain.ErrSnapshotEmpty when no snapshot has been saved yet.
func (s *Store) LoadSnapshot(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, barcode, price, stock_quantity
		FROM products ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Barcode, &p.Price, &p.StockQuantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return nil, domain.ErrSnapshotEmpty
	}
	return products, nil
}

// SavedAt returns when the current snapshot was saved, or the zero time when
// no snapshot exists.
func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM snapshot_meta WHERE key = 'saved_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read snapshot time: %w", err)
	}
	return time.Parse(time.RFC3339, value)
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
