package compete

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite, for local and
// development use behind the same interface as PostgresStore.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sqldb.Exec(pragma); err != nil {
			sqldb.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sqldb}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS competitors (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	subject_id      TEXT NOT NULL,
	place_id        TEXT NOT NULL,
	name            TEXT NOT NULL,
	rating          REAL,
	reviews_total   INTEGER,
	distance_meters INTEGER,
	is_stronger     INTEGER,
	photo_ref       TEXT,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (subject_id, place_id)
);

CREATE INDEX IF NOT EXISTS idx_competitors_subject ON competitors(subject_id);
`

// Migrate creates the competitors table and its indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// sqliteOrderClause mirrors the Postgres tier ordering. SQLite sorts NULLs
// first on DESC, so the explicit IS NULL keys keep metric-less rows last.
func sqliteOrderClause(tier Tier) string {
	switch tier {
	case Tier0:
		return "is_stronger IS NULL, is_stronger DESC, reviews_total IS NULL, reviews_total DESC, rating IS NULL, rating DESC"
	case Tier1:
		return "reviews_total IS NULL, reviews_total DESC, rating IS NULL, rating DESC"
	case Tier2:
		return "distance_meters IS NULL, distance_meters ASC, reviews_total IS NULL, reviews_total DESC, rating IS NULL, rating DESC"
	default:
		return "distance_meters IS NULL, distance_meters ASC"
	}
}

// ListCompetitors returns one ordered page of competitor rows for a subject.
func (s *SQLiteStore) ListCompetitors(ctx context.Context, subjectID string, tier Tier, offset, limit int) ([]Record, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM competitors WHERE subject_id = ? ORDER BY %s LIMIT ? OFFSET ?`,
		competitorColumns, sqliteOrderClause(tier),
	)

	rows, err := s.db.QueryContext(ctx, query, subjectID, limit, offset)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list competitors tier %d", tier)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var stronger *int64
		if err := rows.Scan(
			&r.PlaceID, &r.Name, &r.Rating, &r.ReviewsTotal,
			&r.DistanceMeters, &stronger, &r.PhotoRef,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan competitor")
		}
		if stronger != nil {
			b := *stronger != 0
			r.IsStronger = &b
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountCompetitors returns the unfiltered competitor total for a subject.
func (s *SQLiteStore) CountCompetitors(ctx context.Context, subjectID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM competitors WHERE subject_id = ?`,
		subjectID,
	).Scan(&count)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: count competitors")
	}
	return count, nil
}

// InsertCompetitors upserts competitor rows for a subject.
func (s *SQLiteStore) InsertCompetitors(ctx context.Context, subjectID string, records []Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var inserted int64
	for _, r := range records {
		var stronger *int64
		if r.IsStronger != nil {
			v := int64(0)
			if *r.IsStronger {
				v = 1
			}
			stronger = &v
		}
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO competitors (subject_id, place_id, name, rating, reviews_total, distance_meters, is_stronger, photo_ref)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (subject_id, place_id) DO UPDATE SET
				name = excluded.name,
				rating = excluded.rating,
				reviews_total = excluded.reviews_total,
				distance_meters = excluded.distance_meters,
				is_stronger = excluded.is_stronger,
				photo_ref = excluded.photo_ref`,
			subjectID, r.PlaceID, r.Name, r.Rating, r.ReviewsTotal, r.DistanceMeters, stronger, r.PhotoRef,
		)
		if err != nil {
			return inserted, eris.Wrapf(err, "sqlite: insert competitor %s", r.PlaceID)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += n
		}
	}
	return inserted, nil
}
