package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/velora/bikepulse/internal/domain/dataset"
)

// Catalog persists imported datasets. Re-importing a dataset under the same
// name replaces the previous import.
type Catalog struct {
	db *DB
}

// NewCatalog creates a new Catalog over db.
func NewCatalog(db *DB) *Catalog {
	return &Catalog{db: db}
}

// DatasetInfo describes one catalog entry.
type DatasetInfo struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Granularity dataset.Granularity `json:"granularity"`
	Source      string              `json:"source"`
	RecordCount int                 `json:"record_count"`
	ImportedAt  time.Time           `json:"imported_at"`
}

// Import stores the dataset under its name and returns the import batch ID.
func (c *Catalog) Import(ctx context.Context, ds *dataset.Dataset, source string) (string, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM datasets WHERE name = ?`, ds.Name()); err != nil {
		return "", fmt.Errorf("replace dataset %q: %w", ds.Name(), err)
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (id, name, granularity, source, record_count) VALUES (?, ?, ?, ?, ?)`,
		id, ds.Name(), string(ds.Granularity()), source, ds.Len()); err != nil {
		return "", fmt.Errorf("insert dataset %q: %w", ds.Name(), err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rentals (
			dataset_id, seq, date, hour, season, year, month, weekday,
			holiday, working_day, weather, temp, feels_like, humidity,
			windspeed, casual, registered, rides
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare rental insert: %w", err)
	}
	defer stmt.Close()

	for seq, r := range ds.Records() {
		if _, err := stmt.ExecContext(ctx,
			id, seq, r.Date.Format("2006-01-02"), r.Hour,
			int(r.Season), r.Year, int(r.Month), int(r.Weekday),
			boolInt(r.Holiday), boolInt(r.WorkingDay), int(r.Weather),
			r.Temp, r.FeelsLike, r.Humidity, r.Windspeed,
			r.Casual, r.Registered, r.Rides); err != nil {
			return "", fmt.Errorf("insert rental %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit import: %w", err)
	}
	return id, nil
}

// Load materializes a previously imported dataset by name.
func (c *Catalog) Load(ctx context.Context, name string) (*dataset.Dataset, error) {
	var id, granularity string
	err := c.db.QueryRowContext(ctx,
		`SELECT id, granularity FROM datasets WHERE name = ?`, name).
		Scan(&id, &granularity)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup dataset %q: %w", name, err)
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT date, hour, season, year, month, weekday, holiday,
		       working_day, weather, temp, feels_like, humidity,
		       windspeed, casual, registered, rides
		FROM rentals WHERE dataset_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query rentals for %q: %w", name, err)
	}
	defer rows.Close()

	var records []dataset.Record
	for rows.Next() {
		var r dataset.Record
		var date string
		var season, month, weekday, holiday, working, weather int
		if err := rows.Scan(&date, &r.Hour, &season, &r.Year, &month, &weekday,
			&holiday, &working, &weather, &r.Temp, &r.FeelsLike, &r.Humidity,
			&r.Windspeed, &r.Casual, &r.Registered, &r.Rides); err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		r.Date, err = time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("scan rental date: %w", err)
		}
		r.Season = dataset.Season(season)
		r.Month = time.Month(month)
		r.Weekday = time.Weekday(weekday)
		r.Holiday = holiday == 1
		r.WorkingDay = working == 1
		r.Weather = dataset.Weather(weather)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rentals for %q: %w", name, err)
	}

	return dataset.New(name, dataset.Granularity(granularity), records), nil
}

// List returns all catalog entries ordered by name.
func (c *Catalog) List(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, granularity, source, record_count, imported_at
		FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var infos []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		var granularity string
		if err := rows.Scan(&info.ID, &info.Name, &granularity, &info.Source,
			&info.RecordCount, &info.ImportedAt); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		info.Granularity = dataset.Granularity(granularity)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
