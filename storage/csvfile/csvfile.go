// Package csvfile persists the budget and the expense ledger as CSV files.
package csvfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/Rshep3087/spendlog/ledger"
	"github.com/Rshep3087/spendlog/storage"
)

const filePerm = 0o644

// Store reads and writes the budget and expense files on an afero filesystem.
type Store struct {
	fs           afero.Fs
	budgetPath   string
	expensesPath string
}

var _ storage.Backend = (*Store)(nil)

// New returns a store for the given files.
func New(fsys afero.Fs, budgetPath, expensesPath string) *Store {
	return &Store{fs: fsys, budgetPath: budgetPath, expensesPath: expensesPath}
}

// LoadBudget returns the budget from the last row of the budget file.
func (s *Store) LoadBudget(_ context.Context) (float64, error) {
	data, err := s.read(s.budgetPath)
	if err != nil {
		return 0, err
	}

	amount, rows, err := ReadBudget(bytes.NewReader(data), s.budgetPath)
	if err != nil {
		return 0, err
	}

	switch {
	case rows == 0:
		return 0, fmt.Errorf("budget file %s has no rows: %w", s.budgetPath, storage.ErrNoRows)
	case rows > 1:
		log.Warn("budget file has more than one row, using the last one", "file", s.budgetPath, "rows", rows)
	}

	return amount, nil
}

// SaveBudget rewrites the budget file with a single row.
func (s *Store) SaveBudget(_ context.Context, amount float64) error {
	var buf bytes.Buffer
	if err := WriteBudget(&buf, amount); err != nil {
		return fmt.Errorf("failed to encode budget: %w", err)
	}
	return s.write(s.budgetPath, buf.Bytes())
}

// LoadLedger accumulates the expense file into l.
func (s *Store) LoadLedger(_ context.Context, l *ledger.Ledger) error {
	data, err := s.read(s.expensesPath)
	if err != nil {
		return err
	}
	return ReadLedger(bytes.NewReader(data), s.expensesPath, l)
}

// SaveLedger rewrites the expense file from l.
func (s *Store) SaveLedger(_ context.Context, l *ledger.Ledger) error {
	var buf bytes.Buffer
	if err := WriteLedger(&buf, l); err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}
	return s.write(s.expensesPath, buf.Bytes())
}

// Close is a no-op; files are not held open between calls.
func (s *Store) Close() error {
	return nil
}

func (s *Store) read(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// write replaces path atomically by writing a temp file in the same directory
// and renaming it over the target.
func (s *Store) write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := s.fs.Chmod(tmpName, filePerm); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	log.Debug("wrote file", "file", path, "bytes", len(data))
	return nil
}
