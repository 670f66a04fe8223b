package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"trip-scheduler-service/internal/domain"
)

// SQLite-backed implementation of the POIRepository port.
type SqlitePOIRepository struct{ DB *sql.DB }

func NewSqlitePOIRepository(db *sql.DB) *SqlitePOIRepository {
	return &SqlitePOIRepository{DB: db}
}

// Return the curated catalog for a city, most popular first.
func (s *SqlitePOIRepository) ListPOIs(ctx context.Context, city string) ([]domain.CandidatePOI, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite poi repository: DB is nil")
	}

	query := `
	SELECT
		poi_id,
		name,
		lat,
		lon,
		category,
		popularity,
		min_dwell_min,
		source_name,
		source_url,
		fetched_at
	FROM pois
	WHERE city = ?
	ORDER BY popularity DESC, poi_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, strings.ToLower(strings.TrimSpace(city)))
	if err != nil {
		return nil, fmt.Errorf("list pois: query pois table: %w", err)
	}
	defer rows.Close()

	pois := make([]domain.CandidatePOI, 0, 64)
	for rows.Next() {
		var p domain.CandidatePOI
		var category, fetchedAt string
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Lat,
			&p.Lon,
			&category,
			&p.Popularity,
			&p.MinDwellMin,
			&p.Source.Name,
			&p.Source.URL,
			&fetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list pois: scan row: %w", err)
		}
		p.Category = domain.ParseCategory(category)
		if ts, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
			p.Source.FetchedAt = ts
		}
		pois = append(pois, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pois: row iteration: %w", err)
	}

	return pois, nil
}

// Insert or refresh catalog entries, keyed by POI id.
func (s *SqlitePOIRepository) UpsertPOIs(ctx context.Context, city string, pois []domain.CandidatePOI) error {
	if s.DB == nil {
		return errors.New("sqlite poi repository: DB is nil")
	}
	if len(pois) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert pois: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO pois (
		poi_id,
		city,
		name,
		lat,
		lon,
		category,
		popularity,
		min_dwell_min,
		source_name,
		source_url,
		fetched_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("upsert pois: prepare insert: %w", err)
	}
	defer stmt.Close()

	normalized := strings.ToLower(strings.TrimSpace(city))
	for _, p := range pois {
		_, err := stmt.ExecContext(ctx,
			p.ID,
			normalized,
			p.Name,
			p.Lat,
			p.Lon,
			string(p.Category),
			p.Popularity,
			p.MinDwellMin,
			p.Source.Name,
			p.Source.URL,
			p.Source.FetchedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("upsert pois: insert poi_id=%s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert pois: commit tx: %w", err)
	}

	return nil
}
