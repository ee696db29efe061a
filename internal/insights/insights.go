// Package insights orchestrates the competitor pipeline end to end: classify
// the subject, retrieve and score nearby candidates, persist the survivors,
// and run the gap analysis against the resulting leaders.
package insights

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/category"
	"github.com/ibrhmmrana/hunter2.0-sub002/internal/compete"
	"github.com/ibrhmmrana/hunter2.0-sub002/internal/gaps"
	"github.com/ibrhmmrana/hunter2.0-sub002/internal/match"
	"github.com/ibrhmmrana/hunter2.0-sub002/pkg/places"
)

// scoreConcurrency bounds concurrent candidate scoring.
const scoreConcurrency = 8

// leaderSampleSize is how many top-scored competitors feed the leader
// averages for the gap analysis.
const leaderSampleSize = 6

// defaultRadiusMeters is the nearby-search radius when the caller does not
// override it.
const defaultRadiusMeters = 3000

// Subject is the business an insights report is built for.
type Subject struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	PrimaryCategory string         `json:"primary_category,omitempty"`
	LegacyCategory  string         `json:"legacy_category,omitempty"`
	Categories      []string       `json:"categories,omitempty"`
	Location        *places.LatLng `json:"location,omitempty"`
	Rating          *float64       `json:"rating,omitempty"`
	ReviewsTotal    *int           `json:"reviews_total,omitempty"`
	ReviewsLast30   *int           `json:"reviews_last_30,omitempty"`
	ProfileScore    *float64       `json:"profile_score,omitempty"`
	LastPostAgeDays *int           `json:"last_post_age_days,omitempty"`
}

// ScoredCandidate is a candidate that survived the anchor filter, with its
// extracted categories and match score attached.
type ScoredCandidate struct {
	places.Candidate
	Categories    []string `json:"categories"`
	Score         int      `json:"score"`
	VerticalMatch bool     `json:"vertical_match"`
}

// Report is the full insights output for a subject.
type Report struct {
	Context     category.Context  `json:"context"`
	Competitors []ScoredCandidate `json:"competitors"`
	Gaps        gaps.Result       `json:"gaps"`
}

// Builder wires the places client and the competitor store into report
// construction.
type Builder struct {
	places places.Client
	store  compete.Store
	radius float64
	log    *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithRadius overrides the nearby-search radius in meters.
func WithRadius(meters float64) Option {
	return func(b *Builder) {
		b.radius = meters
	}
}

// NewBuilder creates a report builder.
func NewBuilder(client places.Client, store compete.Store, opts ...Option) *Builder {
	b := &Builder{
		places: client,
		store:  store,
		radius: defaultRadiusMeters,
		log:    zap.L().Named("insights"),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// BuildReport classifies the subject, retrieves candidates around it, scores
// and filters them, persists the survivors as competitor rows, and runs the
// gap analysis against the top-scored leaders.
func (b *Builder) BuildReport(ctx context.Context, subject Subject) (*Report, error) {
	catCtx := category.BuildContext(subject.PrimaryCategory, subject.LegacyCategory, subject.Categories)
	anchor := match.NewAnchor(catCtx.Primary)

	candidates, err := b.retrieve(ctx, subject, catCtx)
	if err != nil {
		return nil, err
	}

	scored := b.scoreCandidates(ctx, subject, catCtx, anchor, candidates)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortScored(scored)

	if err := b.persist(ctx, subject, scored); err != nil {
		return nil, err
	}

	report := &Report{
		Context:     catCtx,
		Competitors: scored,
		Gaps:        gaps.Analyze(b.gapInputs(subject, scored)),
	}

	b.log.Info("report built",
		zap.String("subject_id", subject.ID),
		zap.String("vertical", string(catCtx.Vertical)),
		zap.Int("candidates", len(candidates)),
		zap.Int("competitors", len(scored)),
	)
	return report, nil
}

// retrieve fetches raw candidates: a nearby search when the subject has a
// location, otherwise an anchored text query.
func (b *Builder) retrieve(ctx context.Context, subject Subject, catCtx category.Context) ([]places.Candidate, error) {
	if subject.Location != nil {
		return b.places.SearchNearby(ctx, *subject.Location, b.radius, nil)
	}

	query := catCtx.Primary
	if query == "" {
		query = subject.Name
	}
	return b.places.SearchText(ctx, query, nil, b.radius)
}

// scoreCandidates extracts categories and scores every candidate
// concurrently, dropping the subject itself and anchor-filter rejects.
// Scoring is pure, so worker errors cannot occur; the group exists for the
// concurrency limit.
func (b *Builder) scoreCandidates(ctx context.Context, subject Subject, catCtx category.Context, anchor match.Anchor, candidates []places.Candidate) []ScoredCandidate {
	results := make([]*ScoredCandidate, len(candidates))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scoreConcurrency)
	for i, cand := range candidates {
		g.Go(func() error {
			if cand.PlaceID == subject.ID {
				return nil
			}
			if !anchor.Passes(cand.Types, cand.Name) {
				return nil
			}

			cats := category.ExtractCandidateCategories(cand.Types, cand.PrimaryType, cand.Name)
			res := match.Score(catCtx, cats)

			sc := &ScoredCandidate{
				Candidate:     cand,
				Categories:    cats,
				Score:         res.Score,
				VerticalMatch: res.VerticalMatch,
			}
			if sc.DistanceMeters == nil && subject.Location != nil && cand.Location != nil {
				d := int(math.Round(haversineKM(
					subject.Location.Latitude, subject.Location.Longitude,
					cand.Location.Latitude, cand.Location.Longitude,
				) * 1000))
				sc.DistanceMeters = &d
			}
			results[i] = sc
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck

	scored := make([]ScoredCandidate, 0, len(results))
	for _, r := range results {
		if r != nil {
			scored = append(scored, *r)
		}
	}
	return scored
}

// sortScored orders by match score, then rating, then review volume, with
// missing metrics last.
func sortScored(scored []ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		ri, rj := floatOrZero(scored[i].Rating), floatOrZero(scored[j].Rating)
		if ri != rj {
			return ri > rj
		}
		return intOrZero(scored[i].UserRatingCount) > intOrZero(scored[j].UserRatingCount)
	})
}

// persist upserts the scored survivors so the retrieval ladder can page over
// them later.
func (b *Builder) persist(ctx context.Context, subject Subject, scored []ScoredCandidate) error {
	if len(scored) == 0 {
		return nil
	}

	records := make([]compete.Record, len(scored))
	for i, sc := range scored {
		records[i] = compete.Record{
			PlaceID:        sc.PlaceID,
			Name:           sc.Name,
			Rating:         sc.Rating,
			ReviewsTotal:   sc.UserRatingCount,
			DistanceMeters: sc.DistanceMeters,
			IsStronger:     strongerThan(subject, sc),
			PhotoRef:       sc.PhotoRef,
		}
	}

	_, err := b.store.InsertCompetitors(ctx, subject.ID, records)
	return err
}

// strongerThan compares a candidate's public strength to the subject's. Nil
// when either side lacks the metrics to compare.
func strongerThan(subject Subject, sc ScoredCandidate) *bool {
	if sc.Rating == nil || sc.UserRatingCount == nil || subject.Rating == nil || subject.ReviewsTotal == nil {
		return nil
	}
	cand := gaps.StrengthScore(sc.Rating, sc.UserRatingCount, nil, nil, nil)
	subj := gaps.StrengthScore(subject.Rating, subject.ReviewsTotal, nil, nil, nil)
	stronger := cand > subj
	return &stronger
}

// gapInputs averages the top-scored competitors into leader metrics.
func (b *Builder) gapInputs(subject Subject, scored []ScoredCandidate) gaps.Inputs {
	in := gaps.Inputs{
		Rating:          subject.Rating,
		ReviewsTotal:    subject.ReviewsTotal,
		ReviewsLast30:   subject.ReviewsLast30,
		ProfileScore:    subject.ProfileScore,
		LastPostAgeDays: subject.LastPostAgeDays,
	}

	sample := scored
	if len(sample) > leaderSampleSize {
		sample = sample[:leaderSampleSize]
	}

	var (
		ratingSum, reviewsSum float64
		ratingN, reviewsN     int
	)
	for _, sc := range sample {
		if sc.Rating != nil {
			ratingSum += *sc.Rating
			ratingN++
		}
		if sc.UserRatingCount != nil {
			reviewsSum += float64(*sc.UserRatingCount)
			reviewsN++
		}
	}
	if ratingN > 0 {
		avg := ratingSum / float64(ratingN)
		in.LeaderRating = &avg
	}
	if reviewsN > 0 {
		avg := reviewsSum / float64(reviewsN)
		in.LeaderReviewsAvg = &avg
	}
	return in
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// haversineKM returns the great-circle distance between two coordinates.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKM = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}
