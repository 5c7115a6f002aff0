package db

import "fmt"

func (d *DB) migrate() error {
	if _, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var version int
	err := d.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return fmt.Errorf("getting schema version: %w", err)
	}

	migrations := []func(*DB) error{
		migrateV1,
		migrateV2,
	}

	for i := version; i < len(migrations); i++ {
		if err := migrations[i](d); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := d.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	return nil
}

func migrateV1(d *DB) error {
	// position keeps the order the linker returned, which is the removal order next time
	_, err := d.Exec(`
		CREATE TABLE linked_files (
			game_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			path TEXT NOT NULL,
			linked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY(game_id, position)
		)
	`)
	return err
}

func migrateV2(d *DB) error {
	statements := []string{
		`CREATE TABLE link_runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			profile_name TEXT NOT NULL,
			file_count INTEGER NOT NULL,
			linked_at DATETIME NOT NULL
		)`,
		`CREATE INDEX idx_link_runs_game ON link_runs(game_id, linked_at)`,
	}

	for _, stmt := range statements {
		if _, err := d.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:30], err)
		}
	}
	return nil
}
