package gaps

import "math"

// Strength score weights. Rating and review volume together contribute up to
// 40 points, review freshness up to 30, profile completeness up to 20, and
// recent posting activity up to 10.
const (
	ratingWeight    = 20.0
	reviewsWeight   = 20.0
	freshnessWeight = 30.0
	profileWeight   = 20.0

	// Saturation maxima: metrics beyond these contribute the full weight.
	reviewsSaturation   = 1000.0
	freshnessSaturation = 30.0

	// Defaults when a metric is unknown.
	unknownProfilePoints = 10.0

	activityRecentPoints = 10.0
	activityMonthPoints  = 5.0
	activityStalePoints  = 2.0
)

// StrengthScore converts raw performance metrics into a 0-100 strength
// score. Any missing metric contributes 0 from its own term, except profile
// completeness (flat 10 when unknown) and posting activity (stale-tier 2
// when unknown). The result is rounded and clamped to [0,100].
func StrengthScore(rating *float64, reviews, reviewsLast30 *int, profileScore *float64, lastPostAgeDays *int) int {
	var score float64

	if rating != nil {
		score += (*rating / 5.0) * ratingWeight
	}
	if reviews != nil {
		score += math.Min(reviewsWeight, float64(*reviews)/reviewsSaturation*reviewsWeight)
	}
	if reviewsLast30 != nil {
		score += math.Min(freshnessWeight, float64(*reviewsLast30)/freshnessSaturation*freshnessWeight)
	}

	if profileScore != nil {
		score += (*profileScore / 100.0) * profileWeight
	} else {
		score += unknownProfilePoints
	}

	switch {
	case lastPostAgeDays != nil && *lastPostAgeDays <= 7:
		score += activityRecentPoints
	case lastPostAgeDays != nil && *lastPostAgeDays <= 30:
		score += activityMonthPoints
	default:
		score += activityStalePoints
	}

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
