package compete

import "context"

// Store provides ordered, offset-paginated reads of competitor rows for a
// subject, plus the count query the hasMore heuristic relies on.
type Store interface {
	ListCompetitors(ctx context.Context, subjectID string, tier Tier, offset, limit int) ([]Record, error)
	CountCompetitors(ctx context.Context, subjectID string) (int, error)
	InsertCompetitors(ctx context.Context, subjectID string, records []Record) (int64, error)
}
