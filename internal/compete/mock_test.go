package compete

import (
	"context"

	"github.com/rotisserie/eris"
)

// mockStore serves canned per-tier pools so ladder behavior can be tested
// without a database.
type mockStore struct {
	pools     map[Tier][]Record
	listErr   error
	countErr  error
	listCalls int
}

func newMockStore() *mockStore {
	return &mockStore{pools: make(map[Tier][]Record)}
}

func (m *mockStore) ListCompetitors(_ context.Context, _ string, tier Tier, offset, limit int) ([]Record, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	pool := m.pools[tier]
	if offset >= len(pool) {
		return nil, nil
	}
	end := offset + limit
	if end > len(pool) {
		end = len(pool)
	}
	out := make([]Record, end-offset)
	copy(out, pool[offset:end])
	return out, nil
}

func (m *mockStore) CountCompetitors(context.Context, string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	// The ladder treats the count as the size of the subject's pool, which
	// is the same rows under every tier ordering.
	longest := 0
	for _, pool := range m.pools {
		if len(pool) > longest {
			longest = len(pool)
		}
	}
	return longest, nil
}

func (m *mockStore) InsertCompetitors(_ context.Context, _ string, records []Record) (int64, error) {
	return int64(len(records)), nil
}

// repeatingStore always returns the same batch regardless of offset, to
// drive the ladder into its widening and iteration-ceiling paths.
type repeatingStore struct {
	batch []Record
	total int
}

func (r *repeatingStore) ListCompetitors(context.Context, string, Tier, int, int) ([]Record, error) {
	out := make([]Record, len(r.batch))
	copy(out, r.batch)
	return out, nil
}

func (r *repeatingStore) CountCompetitors(context.Context, string) (int, error) {
	return r.total, nil
}

func (r *repeatingStore) InsertCompetitors(context.Context, string, []Record) (int64, error) {
	return 0, eris.New("not implemented")
}

func makeRecords(prefix string, n int) []Record {
	out := make([]Record, n)
	for i := range out {
		reviews := (n - i) * 10
		out[i] = Record{
			PlaceID:      prefix + string(rune('a'+i)),
			Name:         prefix + " place",
			ReviewsTotal: &reviews,
		}
	}
	return out
}
