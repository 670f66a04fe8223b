package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"trip-scheduler-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPOIsQuery := `
	CREATE TABLE IF NOT EXISTS pois (
		poi_id TEXT PRIMARY KEY,
		city TEXT NOT NULL,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		category TEXT NOT NULL,
		popularity REAL NOT NULL,
		min_dwell_min INTEGER NOT NULL,
		source_name TEXT NOT NULL DEFAULT '',
		source_url TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL DEFAULT ''
	);
	`

	createMatrixCacheQuery := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
        mode TEXT NOT NULL,
        a TEXT NOT NULL,
        b TEXT NOT NULL,
        eta_min REAL NOT NULL,
        PRIMARY KEY (mode, a, b)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pois_city
    ON pois(city, popularity);
	`

	statements := []string{
		createPOIsQuery,
		createMatrixCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type POISeed struct {
	ID          string  `json:"id"`
	City        string  `json:"city"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Category    string  `json:"category"`
	Popularity  float64 `json:"popularity"`
	MinDwellMin int     `json:"min_dwell_min"`
}

// Populate the database with catalog data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed pois: read %q: %w", jsonPath, err)
	}

	var data []POISeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed pois: parse json: %w", err)
	}

	byCity := make(map[string][]domain.CandidatePOI, 4)
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("seed pois: item at index %d: id cannot be empty", i+1)
		}

		city := strings.ToLower(strings.TrimSpace(item.City))
		if city == "" {
			return fmt.Errorf("seed pois: item %q: city cannot be empty", id)
		}

		if item.MinDwellMin <= 0 {
			return fmt.Errorf("seed pois: item %q: invalid min_dwell_min %d", id, item.MinDwellMin)
		}

		byCity[city] = append(byCity[city], domain.CandidatePOI{
			ID:          id,
			Name:        strings.TrimSpace(item.Name),
			Lat:         item.Lat,
			Lon:         item.Lon,
			Category:    domain.ParseCategory(item.Category),
			Popularity:  item.Popularity,
			MinDwellMin: item.MinDwellMin,
			Source: domain.POISource{
				Name:      "SeedCatalog",
				FetchedAt: time.Now().UTC(),
			},
		})
	}

	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	repo := NewSqlitePOIRepository(db)
	for _, city := range cities {
		if err := repo.UpsertPOIs(context.Background(), city, byCity[city]); err != nil {
			return fmt.Errorf("seed pois: city %q: %w", city, err)
		}
	}

	return nil
}
