package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the dataset catalog schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Imported datasets
CREATE TABLE IF NOT EXISTS datasets (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    granularity TEXT NOT NULL CHECK(granularity IN ('daily', 'hourly')),
    source TEXT NOT NULL,
    record_count INTEGER NOT NULL,
    imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Rental observations, ordered per dataset by seq
CREATE TABLE IF NOT EXISTS rentals (
    dataset_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    date TEXT NOT NULL,
    hour INTEGER NOT NULL,
    season INTEGER NOT NULL,
    year INTEGER NOT NULL,
    month INTEGER NOT NULL,
    weekday INTEGER NOT NULL,
    holiday INTEGER NOT NULL,
    working_day INTEGER NOT NULL,
    weather INTEGER NOT NULL,
    temp REAL NOT NULL,
    feels_like REAL NOT NULL,
    humidity REAL NOT NULL,
    windspeed REAL NOT NULL,
    casual INTEGER NOT NULL,
    registered INTEGER NOT NULL,
    rides INTEGER NOT NULL,
    PRIMARY KEY (dataset_id, seq),
    FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_rentals_dataset ON rentals(dataset_id);
`
	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
