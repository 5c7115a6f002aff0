package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DonovanMods/modlink/internal/domain"
)

// GetLinkedFiles returns the paths last linked into a game, in link order.
// A game that was never linked has an empty set.
func (d *DB) GetLinkedFiles(gameID string) ([]string, error) {
	rows, err := d.Query(`
		SELECT path FROM linked_files
		WHERE game_id = ?
		ORDER BY position
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying linked files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scanning path: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// ReplaceLinkedFiles swaps a game's linked set for paths in one transaction.
// There is no merge: the old set is gone once this returns.
func (d *DB) ReplaceLinkedFiles(gameID string, paths []string) error {
	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM linked_files WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("clearing linked files: %w", err)
	}

	now := time.Now().UTC()
	for i, p := range paths {
		if _, err := tx.Exec(`
			INSERT INTO linked_files (game_id, position, path, linked_at)
			VALUES (?, ?, ?, ?)
		`, gameID, i, p, now); err != nil {
			return fmt.Errorf("saving linked file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing linked files: %w", err)
	}
	return nil
}

// RecordLinkRun stores a successful link operation
func (d *DB) RecordLinkRun(run domain.LinkRun) error {
	_, err := d.Exec(`
		INSERT INTO link_runs (id, game_id, profile_name, file_count, linked_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.GameID, run.ProfileName, run.FileCount, run.LinkedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording link run: %w", err)
	}
	return nil
}

// LastLinkRun returns the most recent link run for a game, or nil if none
func (d *DB) LastLinkRun(gameID string) (*domain.LinkRun, error) {
	var run domain.LinkRun
	err := d.QueryRow(`
		SELECT id, game_id, profile_name, file_count, linked_at
		FROM link_runs
		WHERE game_id = ?
		ORDER BY linked_at DESC
		LIMIT 1
	`, gameID).Scan(&run.ID, &run.GameID, &run.ProfileName, &run.FileCount, &run.LinkedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting last link run: %w", err)
	}
	return &run, nil
}
