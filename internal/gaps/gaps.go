// Package gaps turns subject-vs-leader performance metrics into a strength
// score, severity-classified gap cards, and a ranked action list.
package gaps

// Severity classifies how badly the subject trails the leader on one dimension.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Impact is the expected payoff of a recommended action.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Effort is the estimated work to complete a recommended action.
type Effort string

const (
	EffortLow    Effort = "Low"
	EffortMedium Effort = "Medium"
	EffortHigh   Effort = "High"
)

// Inputs is a snapshot of subject metrics alongside leader (typically
// averaged) equivalents. Every field is optional; absence degrades to a
// documented default and never causes an error.
type Inputs struct {
	Rating          *float64 `json:"rating,omitempty"`
	ReviewsTotal    *int     `json:"reviews_total,omitempty"`
	ReviewsLast30   *int     `json:"reviews_last_30,omitempty"`
	ProfileScore    *float64 `json:"profile_score,omitempty"`
	LastPostAgeDays *int     `json:"last_post_age_days,omitempty"`

	LeaderRating        *float64 `json:"leader_rating,omitempty"`
	LeaderReviewsAvg    *float64 `json:"leader_reviews_avg,omitempty"`
	LeaderReviews30Avg  *float64 `json:"leader_reviews_30_avg,omitempty"`
	LeaderProfileScore  *float64 `json:"leader_profile_score,omitempty"`
	LeaderPostFreqDays  *float64 `json:"leader_post_freq_days,omitempty"`
}

// Card is one severity-classified diagnostic comparing the subject to leader
// averages along a single metric dimension. BarLeader is always 100: the
// leader is the normalization reference. BarYou is clamped to [5,100] so the
// subject's bar stays visible.
type Card struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Severity    Severity `json:"severity"`
	YouLabel    string   `json:"you_label"`
	LeaderLabel string   `json:"leader_label"`
	DeltaLabel  string   `json:"delta_label"`
	BarYou      int      `json:"bar_you"`
	BarLeader   int      `json:"bar_leader"`
	ActionLine  string   `json:"action_line"`
}

// Action is one recommended remediation tied to a gap card.
type Action struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Impact       Impact `json:"impact"`
	Effort       Effort `json:"effort"`
	Timeframe    string `json:"timeframe"`
	RelatedGapID string `json:"related_gap_id"`
}

// Result is the full gap analysis output. Scores are always produced, even
// when every input is absent.
type Result struct {
	OverallScore  int      `json:"overall_score"`
	LeaderScore   int      `json:"leader_score"`
	TopSummary    string   `json:"top_summary"`
	Cards         []Card   `json:"cards"`
	RankedActions []Action `json:"ranked_actions"`
}
