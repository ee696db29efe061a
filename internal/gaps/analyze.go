package gaps

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	// leaderProfileDefault is assumed when leader profile completeness is
	// unknown; subjects with no profile score are treated as starting from 0.
	leaderProfileDefault = 85.0

	// leaderPostFreqDefault is the assumed leader posting cadence in days.
	leaderPostFreqDefault = 7.0

	// socialLagThresholdDays gates the social presence card: only a material
	// lag behind the leader cadence produces a diagnostic.
	socialLagThresholdDays = 14.0

	// profileActionGap is the minimum profile-score gap that proposes an action.
	profileActionGap = 10.0

	maxRankedActions = 3
)

// Analyze converts a subject-vs-leader metrics snapshot into the full gap
// analysis: strength scores for both sides, severity-classified cards, and a
// ranked action list capped at three entries. All-null inputs produce a
// degenerate but well-formed result.
func Analyze(in Inputs) Result {
	res := Result{
		OverallScore: StrengthScore(in.Rating, in.ReviewsTotal, in.ReviewsLast30, in.ProfileScore, in.LastPostAgeDays),
		LeaderScore:  leaderStrength(in),
	}

	var actions []Action
	appendAction := func(card Card, a Action) {
		a.RelatedGapID = card.ID
		a.Impact = impactForSeverity(card.Severity)
		actions = append(actions, a)
	}

	if card, gap, ok := reviewsCard(in); ok {
		res.Cards = append(res.Cards, card)
		if gap > 0 {
			appendAction(card, Action{
				ID:          "boost-reviews",
				Title:       "Launch a review request campaign",
				Description: fmt.Sprintf("Ask recent customers for reviews to close a %.0f-review gap to the leaders.", gap),
				Effort:      EffortMedium,
				Timeframe:   "2-4 weeks",
			})
		}
	}

	if card, gap, ok := freshnessCard(in); ok {
		res.Cards = append(res.Cards, card)
		if gap > 0 {
			appendAction(card, Action{
				ID:          "review-velocity",
				Title:       "Set up post-visit review prompts",
				Description: "Automate a review ask after each visit to lift monthly review volume.",
				Effort:      EffortLow,
				Timeframe:   "1-2 weeks",
			})
		}
	}

	if card, gap, ok := profileCard(in); ok {
		res.Cards = append(res.Cards, card)
		if gap > profileActionGap {
			appendAction(card, Action{
				ID:          "complete-profile",
				Title:       "Complete your business profile",
				Description: "Fill in missing sections: photos, hours, attributes and service details.",
				Effort:      EffortLow,
				Timeframe:   "This week",
			})
		}
	}

	if card, ok := socialCard(in); ok {
		res.Cards = append(res.Cards, card)
		appendAction(card, Action{
			ID:          "post-regularly",
			Title:       "Post updates weekly",
			Description: "Schedule a weekly post so your profile stays as active as the leaders'.",
			Effort:      EffortLow,
			Timeframe:   "Ongoing",
		})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		si, sj := relatedSeverity(res.Cards, actions[i]), relatedSeverity(res.Cards, actions[j])
		if si != sj {
			return si > sj
		}
		return impactRank(actions[i].Impact) > impactRank(actions[j].Impact)
	})
	if len(actions) > maxRankedActions {
		actions = actions[:maxRankedActions]
	}
	res.RankedActions = actions

	res.TopSummary = summarize(res.Cards)
	return res
}

// leaderStrength scores the leader side with the same weights as the subject.
func leaderStrength(in Inputs) int {
	var reviews, reviews30, lastPost *int
	if in.LeaderReviewsAvg != nil {
		v := int(math.Round(*in.LeaderReviewsAvg))
		reviews = &v
	}
	if in.LeaderReviews30Avg != nil {
		v := int(math.Round(*in.LeaderReviews30Avg))
		reviews30 = &v
	}
	if in.LeaderPostFreqDays != nil {
		v := int(math.Round(*in.LeaderPostFreqDays))
		lastPost = &v
	}
	return StrengthScore(in.LeaderRating, reviews, reviews30, in.LeaderProfileScore, lastPost)
}

func reviewsCard(in Inputs) (Card, float64, bool) {
	if in.LeaderReviewsAvg == nil || *in.LeaderReviewsAvg <= 0 {
		return Card{}, 0, false
	}
	leaderAvg := *in.LeaderReviewsAvg
	yours := 0
	if in.ReviewsTotal != nil {
		yours = *in.ReviewsTotal
	}

	gap := math.Max(0, leaderAvg-float64(yours))
	card := Card{
		ID:          "reviews",
		Label:       "Reviews & rating",
		Severity:    ClassifySeverity(gap/leaderAvg, gap),
		YouLabel:    fmt.Sprintf("%d reviews%s", yours, ratingSuffix(in.Rating)),
		LeaderLabel: fmt.Sprintf("%.0f avg reviews%s", leaderAvg, ratingSuffix(in.LeaderRating)),
		DeltaLabel:  fmt.Sprintf("Leaders average %.0f more reviews than you.", gap),
		BarYou:      clampBar(float64(yours) / leaderAvg * 100),
		BarLeader:   100,
		ActionLine:  "Ask happy customers for a review after every visit.",
	}
	if gap == 0 {
		card.DeltaLabel = "You match the leaders on review volume."
	}
	return card, gap, true
}

func freshnessCard(in Inputs) (Card, float64, bool) {
	if in.LeaderReviews30Avg == nil || *in.LeaderReviews30Avg <= 0 {
		return Card{}, 0, false
	}
	leaderAvg := *in.LeaderReviews30Avg
	yours := 0
	if in.ReviewsLast30 != nil {
		yours = *in.ReviewsLast30
	}

	gap := math.Max(0, leaderAvg-float64(yours))
	card := Card{
		ID:          "freshness",
		Label:       "Review freshness",
		Severity:    ClassifySeverity(gap/leaderAvg, gap),
		YouLabel:    fmt.Sprintf("%d new reviews in 30 days", yours),
		LeaderLabel: fmt.Sprintf("%.0f avg in 30 days", leaderAvg),
		DeltaLabel:  fmt.Sprintf("You're collecting %.0f fewer reviews per month than leaders.", gap),
		BarYou:      clampBar(float64(yours) / leaderAvg * 100),
		BarLeader:   100,
		ActionLine:  "Prompt for reviews while the visit is still fresh.",
	}
	if gap == 0 {
		card.DeltaLabel = "Your review velocity matches the leaders."
	}
	return card, gap, true
}

// profileCard is emitted whenever either side's profile score is known;
// unknown sides fall back to the documented defaults (leader 85, subject 0).
func profileCard(in Inputs) (Card, float64, bool) {
	if in.ProfileScore == nil && in.LeaderProfileScore == nil {
		return Card{}, 0, false
	}
	leader := leaderProfileDefault
	if in.LeaderProfileScore != nil {
		leader = *in.LeaderProfileScore
	}
	yours := 0.0
	if in.ProfileScore != nil {
		yours = *in.ProfileScore
	}

	gap := math.Max(0, leader-yours)
	pct := 0.0
	if leader > 0 {
		pct = gap / leader
	}
	card := Card{
		ID:          "profile",
		Label:       "Profile strength",
		Severity:    ClassifySeverity(pct, gap),
		YouLabel:    fmt.Sprintf("Profile %.0f%% complete", yours),
		LeaderLabel: fmt.Sprintf("Leaders at %.0f%%", leader),
		DeltaLabel:  fmt.Sprintf("Your profile trails the leader benchmark by %.0f points.", gap),
		BarYou:      clampBar(yours / math.Max(leader, 1) * 100),
		BarLeader:   100,
		ActionLine:  "Add photos, hours and attributes to finish your profile.",
	}
	if gap == 0 {
		card.DeltaLabel = "Your profile is as complete as the leaders'."
	}
	return card, gap, true
}

// socialCard appears only when the subject's posting lag behind the leader
// cadence is material (more than socialLagThresholdDays).
func socialCard(in Inputs) (Card, bool) {
	if in.LastPostAgeDays == nil {
		return Card{}, false
	}
	leaderFreq := leaderPostFreqDefault
	if in.LeaderPostFreqDays != nil {
		leaderFreq = *in.LeaderPostFreqDays
	}

	lag := float64(*in.LastPostAgeDays) - leaderFreq
	if lag <= socialLagThresholdDays {
		return Card{}, false
	}

	card := Card{
		ID:          "social",
		Label:       "Social presence",
		Severity:    ClassifySeverity(lag/30.0, lag),
		YouLabel:    fmt.Sprintf("Last post %d days ago", *in.LastPostAgeDays),
		LeaderLabel: fmt.Sprintf("Leaders post every ~%.0f days", leaderFreq),
		DeltaLabel:  fmt.Sprintf("You're %.0f days behind the leader posting cadence.", lag),
		BarYou:      clampBar(leaderFreq / math.Max(float64(*in.LastPostAgeDays), 1) * 100),
		BarLeader:   100,
		ActionLine:  "Schedule a weekly post to stay visible.",
	}
	return card, true
}

func summarize(cards []Card) string {
	if labels := labelsWith(cards, SeverityCritical); len(labels) > 0 {
		return fmt.Sprintf("Critical gaps: %s.", strings.Join(labels, ", "))
	}
	if labels := labelsWith(cards, SeverityHigh); len(labels) > 0 {
		return fmt.Sprintf("Needs attention: %s.", strings.Join(labels, ", "))
	}
	if len(cards) > 0 {
		return fmt.Sprintf("Minor gap: %s.", cards[0].Label)
	}
	return "You're performing well against nearby leaders."
}

func labelsWith(cards []Card, s Severity) []string {
	var out []string
	for _, c := range cards {
		if c.Severity == s {
			out = append(out, c.Label)
		}
	}
	return out
}

func relatedSeverity(cards []Card, a Action) int {
	for _, c := range cards {
		if c.ID == a.RelatedGapID {
			return severityRank(c.Severity)
		}
	}
	return 0
}

func impactForSeverity(s Severity) Impact {
	switch s {
	case SeverityCritical, SeverityHigh:
		return ImpactHigh
	case SeverityMedium:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func ratingSuffix(r *float64) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf(" · %.1f★", *r)
}

func clampBar(v float64) int {
	rounded := int(math.Round(v))
	if rounded < 5 {
		return 5
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
