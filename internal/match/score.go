// Package match scores how strongly a candidate place matches a subject
// business and applies anchor-based hard filtering.
package match

import (
	"strings"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/category"
)

// Scoring weights. The score is additive with no fixed upper bound; it is
// only ever compared relatively, never normalized to a percentage.
const (
	primaryMatchPoints = 3
	top3MatchPoints    = 2
	cuisineBonusPoints = 1
)

// Result is the outcome of comparing a business context to a candidate's
// extracted categories.
type Result struct {
	Score         int  `json:"score"`
	VerticalMatch bool `json:"vertical_match"`
}

// Score compares a subject's category context against a candidate's
// comparable category set.
//
// Points: +3 when the subject's primary category appears in the candidate
// set, +2 when any of the subject's top-3 categories appears, and +1 when a
// cuisine-qualified primary (any label containing "restaurant") meets a
// candidate carrying the bare "restaurant" category. The vertical match uses
// the first concrete vertical among the candidate's categories.
func Score(ctx category.Context, candidateCategories []string) Result {
	set := make(map[string]struct{}, len(candidateCategories))
	for _, c := range candidateCategories {
		set[c] = struct{}{}
	}

	var score int
	if ctx.Primary != "" {
		if _, ok := set[ctx.Primary]; ok {
			score += primaryMatchPoints
		}
	}
	for _, c := range ctx.Top3 {
		if _, ok := set[c]; ok {
			score += top3MatchPoints
			break
		}
	}
	if strings.Contains(ctx.Primary, "restaurant") {
		if _, ok := set["restaurant"]; ok {
			score += cuisineBonusPoints
		}
	}

	return Result{
		Score:         score,
		VerticalMatch: category.FirstConcreteVertical(candidateCategories) == ctx.Vertical,
	}
}
