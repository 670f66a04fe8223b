package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-scheduler-service/internal/platform/obs"
)

// SQLite-backed cache for pairwise travel-time estimates, keyed by transport
// mode and the unordered POI pair. Keys are expected to be consistent
// (canonical pair ordering) by the caller.
type SqliteMatrixCache struct {
	DB *sql.DB
}

func NewSqliteMatrixCache(db *sql.DB) *SqliteMatrixCache {
	return &SqliteMatrixCache{DB: db}
}

// canonical orders a POI pair so (a,b) and (b,a) share one cache row.
func canonical(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// Fetch cached etas for one origin POI and multiple destination POIs.
// The result maps destination id to eta minutes; misses are simply absent.
func (s *SqliteMatrixCache) GetMany(
	ctx context.Context,
	mode string,
	origin string,
	destinations []string,
) (_ map[string]float64, err error) {
	defer obs.Time(ctx, "matrix.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("matrix cache: db is nil")
	}

	if origin == "" {
		return nil, errors.New("get matrix cache: origin must not be empty")
	}

	if len(destinations) == 0 {
		return map[string]float64{}, nil
	}

	out := make(map[string]float64, len(destinations))

	// SQLite does not support binding slices in an IN (...) clause, and the
	// canonical pair ordering differs per destination, so rows are fetched
	// with one statement over the pair tuples.
	ph := make([]string, 0, len(destinations))
	args := make([]any, 0, 1+2*len(destinations))
	args = append(args, mode)
	for _, d := range destinations {
		d = strings.TrimSpace(d)
		if d == "" || d == origin {
			continue
		}
		a, b := canonical(origin, d)
		ph = append(ph, "(a = ? AND b = ?)")
		args = append(args, a, b)
	}
	if len(ph) == 0 {
		return out, nil
	}

	q := fmt.Sprintf(`
	SELECT a, b, eta_min
	FROM matrix_cache
	WHERE mode = ? AND (%s);
	`, strings.Join(ph, " OR "))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get matrix cache: query matrix_cache table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a, b string
		var eta float64
		if err := rows.Scan(&a, &b, &eta); err != nil {
			return nil, fmt.Errorf("get matrix cache: scan row: %w", err)
		}
		if a == origin {
			out[b] = eta
		} else {
			out[a] = eta
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get matrix cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached etas for a single origin POI.
func (s *SqliteMatrixCache) PutMany(
	ctx context.Context,
	mode string,
	origin string,
	etas map[string]float64,
) error {
	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}

	if origin == "" {
		return errors.New("insert matrix cache: origin must not be empty")
	}

	if len(etas) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert matrix cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO matrix_cache (mode, a, b, eta_min)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (mode, a, b) DO UPDATE
	SET eta_min = excluded.eta_min;
	`)
	if err != nil {
		return fmt.Errorf("insert matrix cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, eta := range etas {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert matrix cache: empty destination key")
		}

		a, b := canonical(origin, dest)
		if _, err := stmt.ExecContext(ctx, mode, a, b, eta); err != nil {
			return fmt.Errorf("insert matrix cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert matrix cache commit: %w", err)
	}

	return nil
}
