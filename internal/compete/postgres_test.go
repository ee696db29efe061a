package compete

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_ListCompetitors_Tier0Order(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rating := 4.6
	reviews := 320
	distance := 850
	stronger := true

	mock.ExpectQuery(`ORDER BY is_stronger DESC NULLS LAST`).
		WithArgs("subject-1", 0, 6).
		WillReturnRows(pgxmock.NewRows(
			[]string{"place_id", "name", "rating", "reviews_total", "distance_meters", "is_stronger", "photo_ref"},
		).AddRow("p1", "Corner Cafe", &rating, &reviews, &distance, &stronger, "ref1"))

	records, err := s.ListCompetitors(context.Background(), "subject-1", Tier0, 0, 6)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "p1", records[0].PlaceID)
	assert.Equal(t, 4.6, *records[0].Rating)
	assert.True(t, *records[0].IsStronger)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListCompetitors_Tier2DistanceFirst(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`ORDER BY distance_meters ASC NULLS LAST, reviews_total DESC NULLS LAST`).
		WithArgs("subject-1", 12, 20).
		WillReturnRows(pgxmock.NewRows(
			[]string{"place_id", "name", "rating", "reviews_total", "distance_meters", "is_stronger", "photo_ref"},
		))

	records, err := s.ListCompetitors(context.Background(), "subject-1", Tier2, 12, 20)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListCompetitors_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .+ FROM competitors`).
		WithArgs("subject-1", 0, 6).
		WillReturnError(eris.New("connection refused"))

	_, err := s.ListCompetitors(context.Background(), "subject-1", Tier0, 0, 6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list competitors")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CountCompetitors(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM competitors`).
		WithArgs("subject-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	count, err := s.CountCompetitors(context.Background(), "subject-1")
	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertCompetitors_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT \(subject_id, place_id\) DO UPDATE`).
		WithArgs("subject-1", "p1", "Corner Cafe", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	n, err := s.InsertCompetitors(context.Background(), "subject-1", []Record{{PlaceID: "p1", Name: "Corner Cafe"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertCompetitors_BulkPath(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	records := make([]Record, bulkInsertThreshold)
	for i := range records {
		records[i] = Record{PlaceID: fmt.Sprintf("p%d", i), Name: "Place"}
	}

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(
		pgx.Identifier{"_tmp_upsert_competitors"},
		[]string{"subject_id", "place_id", "name", "rating", "reviews_total", "distance_meters", "is_stronger", "photo_ref"},
	).WillReturnResult(int64(len(records)))
	mock.ExpectExec(`ON CONFLICT \("subject_id", "place_id"\) DO UPDATE`).
		WillReturnResult(pgxmock.NewResult("INSERT", int64(len(records))))
	mock.ExpectCommit()

	n, err := s.InsertCompetitors(context.Background(), "subject-1", records)
	require.NoError(t, err)
	assert.Equal(t, int64(len(records)), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertCompetitors_Empty(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	n, err := s.InsertCompetitors(context.Background(), "subject-1", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
