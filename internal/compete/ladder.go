package compete

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/metrics"
)

const (
	// DefaultPageSize is the post-filter page size callers receive.
	DefaultPageSize = 6

	// exclusionFetchSize is the raw batch size when an exclusion set is
	// active, to absorb filtering losses.
	exclusionFetchSize = 20

	// tierFetchCeiling bounds within-tier range widening: once a tier has
	// been probed this deep with nothing but excluded rows, the ladder
	// advances instead of widening again.
	tierFetchCeiling = 60

	// maxIterations bounds the tier-advancement loop. Tier advancement plus
	// range widening could otherwise loop unboundedly against a sparse
	// source.
	maxIterations = 10
)

// String renders a tier for logs and metric labels.
func (t Tier) String() string {
	if t >= Tier3Plus {
		return "tier3plus"
	}
	return "tier" + strconv.Itoa(int(t))
}

// Ladder pages through a competitor store, loosening the ordering tier by
// tier. Each call is a stateless function of the submitted cursor, so
// concurrent callers with independent cursors never interfere.
type Ladder struct {
	store Store
	log   *zap.Logger
}

// NewLadder creates a retrieval ladder over the given store.
func NewLadder(store Store) *Ladder {
	return &Ladder{store: store, log: zap.L().Named("ladder")}
}

// FetchMore returns the next page of competitors for the subject. A store
// read failure aborts immediately; it is never masked as "no more results".
// Exhausting every tier, or hitting the iteration ceiling, returns a
// well-formed empty page with HasMore=false.
func (l *Ladder) FetchMore(ctx context.Context, subjectID string, cursor Cursor, pageSizeHint int) (*Page, error) {
	pageSize := pageSizeHint
	if pageSize <= 0 || pageSize > DefaultPageSize {
		pageSize = DefaultPageSize
	}

	sessionID := cursor.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	excluded := make(map[string]struct{}, len(cursor.ExcludedIDs))
	for _, id := range cursor.ExcludedIDs {
		excluded[id] = struct{}{}
	}

	tier := cursor.Tier
	offset := cursor.Offset

	for iter := 0; iter < maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "compete: fetch more")
		}

		fetchSize := pageSize
		if len(excluded) > 0 {
			fetchSize = exclusionFetchSize
		}

		raw, err := l.store.ListCompetitors(ctx, subjectID, tier, offset, fetchSize)
		if err != nil {
			return nil, eris.Wrapf(err, "compete: list tier %s", tier)
		}

		if len(raw) == 0 {
			// Tier exhausted. Tier3Plus is terminal: nothing left anywhere.
			if tier >= Tier3Plus {
				return &Page{
					HasMore:    false,
					NextCursor: Cursor{SessionID: sessionID, Tier: tier, Offset: offset, ExcludedIDs: cursor.ExcludedIDs},
				}, nil
			}
			tier++
			offset = 0
			metrics.LadderTierAdvances.WithLabelValues(tier.String()).Inc()
			continue
		}

		// Filter exclusions, keeping each survivor's raw position so rank
		// reflects its place in the tier's ordering.
		type survivor struct {
			rec Record
			pos int
		}
		var survivors []survivor
		for i, r := range raw {
			if _, skip := excluded[r.PlaceID]; skip {
				continue
			}
			survivors = append(survivors, survivor{rec: r, pos: i})
		}

		if len(survivors) == 0 {
			// Everything fetched was already excluded. Widen within the
			// same tier, bounded by the absolute ceiling.
			if offset+len(raw) < tierFetchCeiling {
				offset += len(raw)
				metrics.LadderRangeWidens.Inc()
				continue
			}
			if tier >= Tier3Plus {
				return &Page{
					HasMore:    false,
					NextCursor: Cursor{SessionID: sessionID, Tier: tier, Offset: offset, ExcludedIDs: cursor.ExcludedIDs},
				}, nil
			}
			tier++
			offset = 0
			metrics.LadderTierAdvances.WithLabelValues(tier.String()).Inc()
			continue
		}

		if len(survivors) > pageSize {
			survivors = survivors[:pageSize]
		}

		records := make([]Record, len(survivors))
		returnedIDs := make([]string, len(survivors))
		for i, s := range survivors {
			s.rec.Rank = offset + s.pos + 1
			records[i] = s.rec
			returnedIDs[i] = s.rec.PlaceID
		}

		nextExcluded := appendUnique(cursor.ExcludedIDs, returnedIDs)
		for _, id := range returnedIDs {
			excluded[id] = struct{}{}
		}

		// hasMore trusts the count query: rows remain iff the unfiltered
		// total exceeds everything excluded or returned so far.
		total, err := l.store.CountCompetitors(ctx, subjectID)
		if err != nil {
			return nil, eris.Wrap(err, "compete: count for hasMore")
		}
		hasMore := total > len(excluded)

		metrics.LadderPagesServed.Inc()
		return &Page{
			Competitors: records,
			HasMore:     hasMore,
			NextCursor: Cursor{
				SessionID:   sessionID,
				Tier:        tier,
				Offset:      offset + survivors[len(survivors)-1].pos + 1,
				ExcludedIDs: nextExcluded,
			},
		}, nil
	}

	l.log.Warn("tier-advancement loop hit iteration ceiling",
		zap.String("subject_id", subjectID),
		zap.String("tier", tier.String()),
		zap.Int("offset", offset),
		zap.Int("excluded", len(excluded)),
	)
	metrics.LadderSafetyCapHits.Inc()
	return &Page{
		HasMore:    false,
		NextCursor: Cursor{SessionID: sessionID, Tier: tier, Offset: offset, ExcludedIDs: cursor.ExcludedIDs},
	}, nil
}

// appendUnique appends ids not already present, preserving order.
func appendUnique(existing, added []string) []string {
	seen := make(map[string]struct{}, len(existing))
	out := make([]string, 0, len(existing)+len(added))
	for _, id := range existing {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range added {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
