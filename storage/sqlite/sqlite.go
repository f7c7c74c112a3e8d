// Package sqlite persists the budget and the expense ledger in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/Rshep3087/spendlog/ledger"
	"github.com/Rshep3087/spendlog/storage"
)

// Store keeps the budget and the ledger in a single database file. The file is
// created on the first save; until then loads report storage.ErrNotFound.
type Store struct {
	path string
	db   *sql.DB
}

var _ storage.Backend = (*Store)(nil)

// New returns a store for the database at path without opening it.
func New(path string) *Store {
	return &Store{path: path}
}

// LoadBudget returns the persisted budget.
func (s *Store) LoadBudget(ctx context.Context) (float64, error) {
	db, err := s.open(false)
	if err != nil {
		return 0, err
	}

	var amount float64
	err = db.QueryRowContext(ctx, `SELECT amount FROM budget WHERE id = 1`).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s has no budget: %w", s.path, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query budget: %w", err)
	}

	return amount, nil
}

// SaveBudget stores amount as the only budget row.
func (s *Store) SaveBudget(ctx context.Context, amount float64) error {
	db, err := s.open(true)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO budget (id, amount) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET amount = excluded.amount`, amount)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}

	log.Debug("saved budget to sqlite", "db_path", s.path, "amount", amount)
	return nil
}

// LoadLedger accumulates every stored row into l in insertion order.
func (s *Store) LoadLedger(ctx context.Context, l *ledger.Ledger) error {
	db, err := s.open(false)
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT seq, date, category, subcategory, amount FROM expenses ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	parsed := ledger.New()
	for rows.Next() {
		var (
			seq                   int
			date                  string
			category, subcategory string
			amount                float64
		)
		if err := rows.Scan(&seq, &date, &category, &subcategory, &amount); err != nil {
			return &storage.ParseError{Source: s.path, Row: seq, Err: err}
		}

		d, err := ledger.ParseDate(date)
		if err != nil {
			return &storage.ParseError{Source: s.path, Row: seq, Column: "date", Value: date, Err: err}
		}
		parsed.Record(d, category, subcategory, amount)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read expenses: %w", err)
	}

	for _, e := range parsed.Entries() {
		l.Record(e.Date, e.Category, e.Subcategory, e.Amount)
	}

	log.Debug("loaded expenses from sqlite", "db_path", s.path, "entries", parsed.Len())
	return nil
}

// SaveLedger replaces every stored row with the entries of l in one transaction.
func (s *Store) SaveLedger(ctx context.Context, l *ledger.Ledger) error {
	db, err := s.open(true)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (seq, date, category, subcategory, amount) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range l.Rows() {
		if _, err := stmt.ExecContext(ctx, i+1, ledger.FormatDate(e.Date), e.Category, e.Subcategory, e.Amount); err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit expenses: %w", err)
	}

	log.Debug("saved expenses to sqlite", "db_path", s.path, "entries", l.Len())
	return nil
}

// Close closes the database if it was opened.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// open returns the database handle, migrating it on first use. With create
// unset, a missing database file is reported as storage.ErrNotFound.
func (s *Store) open(create bool) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		if !create {
			return nil, fmt.Errorf("%s: %w", s.path, storage.ErrNotFound)
		}
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(s.path); err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return db, nil
}
