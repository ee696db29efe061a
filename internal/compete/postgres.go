package compete

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/db"
)

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS competitors (
	id              BIGSERIAL PRIMARY KEY,
	subject_id      TEXT NOT NULL,
	place_id        TEXT NOT NULL,
	name            TEXT NOT NULL,
	rating          DOUBLE PRECISION,
	reviews_total   INTEGER,
	distance_meters INTEGER,
	is_stronger     BOOLEAN,
	photo_ref       TEXT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (subject_id, place_id)
);

CREATE INDEX IF NOT EXISTS idx_competitors_subject ON competitors(subject_id);
CREATE INDEX IF NOT EXISTS idx_competitors_reviews ON competitors(subject_id, reviews_total DESC);
CREATE INDEX IF NOT EXISTS idx_competitors_distance ON competitors(subject_id, distance_meters ASC);
`

// Migrate creates the competitors table and its indexes.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "compete: migrate")
	}
	return nil
}

// orderClause maps a ladder tier to its ORDER BY. NULLS LAST keeps rows with
// missing metrics from floating to the top of any tier.
func orderClause(tier Tier) string {
	switch tier {
	case Tier0:
		return "is_stronger DESC NULLS LAST, reviews_total DESC NULLS LAST, rating DESC NULLS LAST"
	case Tier1:
		return "reviews_total DESC NULLS LAST, rating DESC NULLS LAST"
	case Tier2:
		return "distance_meters ASC NULLS LAST, reviews_total DESC NULLS LAST, rating DESC NULLS LAST"
	default:
		return "distance_meters ASC NULLS LAST"
	}
}

const competitorColumns = `place_id, name, rating, reviews_total, distance_meters, is_stronger, photo_ref`

// ListCompetitors returns one ordered page of competitor rows for a subject.
func (s *PostgresStore) ListCompetitors(ctx context.Context, subjectID string, tier Tier, offset, limit int) ([]Record, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM competitors WHERE subject_id = $1 ORDER BY %s OFFSET $2 LIMIT $3`,
		competitorColumns, orderClause(tier),
	)

	rows, err := s.pool.Query(ctx, query, subjectID, offset, limit)
	if err != nil {
		return nil, eris.Wrapf(err, "compete: list competitors tier %d", tier)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// CountCompetitors returns the unfiltered competitor total for a subject.
func (s *PostgresStore) CountCompetitors(ctx context.Context, subjectID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM competitors WHERE subject_id = $1`,
		subjectID,
	).Scan(&count)
	if err != nil {
		return 0, eris.Wrap(err, "compete: count competitors")
	}
	return count, nil
}

// bulkInsertThreshold is the batch size above which inserts switch from
// per-row upserts to a COPY-backed temp-table upsert.
const bulkInsertThreshold = 50

// InsertCompetitors upserts competitor rows for a subject, refreshing
// metrics on conflict so repeated syncs stay current.
func (s *PostgresStore) InsertCompetitors(ctx context.Context, subjectID string, records []Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	if len(records) >= bulkInsertThreshold {
		return s.bulkInsert(ctx, subjectID, records)
	}

	var inserted int64
	for _, r := range records {
		tag, err := s.pool.Exec(ctx, `
			INSERT INTO competitors (subject_id, place_id, name, rating, reviews_total, distance_meters, is_stronger, photo_ref)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (subject_id, place_id) DO UPDATE SET
				name = EXCLUDED.name,
				rating = EXCLUDED.rating,
				reviews_total = EXCLUDED.reviews_total,
				distance_meters = EXCLUDED.distance_meters,
				is_stronger = EXCLUDED.is_stronger,
				photo_ref = EXCLUDED.photo_ref`,
			subjectID, r.PlaceID, r.Name, r.Rating, r.ReviewsTotal, r.DistanceMeters, r.IsStronger, r.PhotoRef,
		)
		if err != nil {
			return inserted, eris.Wrapf(err, "compete: insert competitor %s", r.PlaceID)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// bulkInsert routes large batches through a COPY-backed temp-table upsert.
func (s *PostgresStore) bulkInsert(ctx context.Context, subjectID string, records []Record) (int64, error) {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{subjectID, r.PlaceID, r.Name, r.Rating, r.ReviewsTotal, r.DistanceMeters, r.IsStronger, r.PhotoRef}
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "competitors",
		Columns:      []string{"subject_id", "place_id", "name", "rating", "reviews_total", "distance_meters", "is_stronger", "photo_ref"},
		ConflictKeys: []string{"subject_id", "place_id"},
	}, rows)
	if err != nil {
		return 0, eris.Wrapf(err, "compete: bulk insert %d competitors", len(records))
	}
	return n, nil
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.PlaceID, &r.Name, &r.Rating, &r.ReviewsTotal,
			&r.DistanceMeters, &r.IsStronger, &r.PhotoRef,
		); err != nil {
			return nil, eris.Wrap(err, "compete: scan competitor")
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
