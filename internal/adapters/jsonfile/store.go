// Package jsonfile persists inventories as JSON artifacts on disk.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cattree/internal/domain"
	"cattree/internal/ports"
)

// Store reads and writes the inventory at one path
type Store struct {
	path string
}

var (
	_ ports.ResultWriter    = (*Store)(nil)
	_ ports.InventoryReader = (*Store)(nil)
)

// NewStore creates a store for path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Location returns the artifact path
func (s *Store) Location() string {
	return s.path
}

// Write atomically replaces the artifact with inv.
// The parent directory is created when missing.
func (s *Store) Write(ctx context.Context, inv *domain.Inventory) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(inv)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename to %s: %w", s.path, err)
	}
	return nil
}

// Read loads the artifact.
// Returns an error wrapping os.ErrNotExist if the file doesn't exist.
func (s *Store) Read(ctx context.Context) (*domain.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	inv, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return inv, nil
}

// Encode renders inv with two-space indentation. Non-ASCII and HTML
// characters are written literally.
func Encode(inv *domain.Inventory) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(inv); err != nil {
		return nil, fmt.Errorf("encode inventory: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an inventory artifact
func Decode(data []byte) (*domain.Inventory, error) {
	var inv domain.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	if inv.Categories == nil {
		inv.Categories = []domain.Record{}
	}
	if err := validateLevels(inv.Categories); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	return &inv, nil
}

// validateLevels checks that records form a pre-order walk: the first record
// is level 1 and a level rises by at most one from the previous record.
func validateLevels(records []domain.Record) error {
	prev := 0
	for i, r := range records {
		if r.Level < 1 {
			return fmt.Errorf("category %d (%q): level %d is below 1", i, r.Name, r.Level)
		}
		if r.Level > prev+1 {
			return fmt.Errorf("category %d (%q): level %d follows level %d", i, r.Name, r.Level, prev)
		}
		prev = r.Level
	}
	return nil
}
