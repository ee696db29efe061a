package main

import (
	"github.com/spf13/cobra"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/gaps"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Run a gap analysis against leader averages",
	Long: `Compares the subject's metrics to leader averages and emits a strength
score, severity-classified gap cards, and up to three ranked actions. Every
flag is optional; omitted metrics degrade to documented defaults.

Examples:
  compete gaps --rating 4.2 --reviews 40 --leader-reviews 220`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var in gaps.Inputs

		f := cmd.Flags()
		if f.Changed("rating") {
			v, _ := f.GetFloat64("rating")
			in.Rating = &v
		}
		if f.Changed("reviews") {
			v, _ := f.GetInt("reviews")
			in.ReviewsTotal = &v
		}
		if f.Changed("reviews-30") {
			v, _ := f.GetInt("reviews-30")
			in.ReviewsLast30 = &v
		}
		if f.Changed("profile-score") {
			v, _ := f.GetFloat64("profile-score")
			in.ProfileScore = &v
		}
		if f.Changed("last-post-days") {
			v, _ := f.GetInt("last-post-days")
			in.LastPostAgeDays = &v
		}
		if f.Changed("leader-rating") {
			v, _ := f.GetFloat64("leader-rating")
			in.LeaderRating = &v
		}
		if f.Changed("leader-reviews") {
			v, _ := f.GetFloat64("leader-reviews")
			in.LeaderReviewsAvg = &v
		}
		if f.Changed("leader-reviews-30") {
			v, _ := f.GetFloat64("leader-reviews-30")
			in.LeaderReviews30Avg = &v
		}
		if f.Changed("leader-profile-score") {
			v, _ := f.GetFloat64("leader-profile-score")
			in.LeaderProfileScore = &v
		}
		if f.Changed("leader-post-freq") {
			v, _ := f.GetFloat64("leader-post-freq")
			in.LeaderPostFreqDays = &v
		}

		return printJSON(gaps.Analyze(in))
	},
}

func init() {
	f := gapsCmd.Flags()
	f.Float64("rating", 0, "subject's star rating (0-5)")
	f.Int("reviews", 0, "subject's total review count")
	f.Int("reviews-30", 0, "subject's reviews in the last 30 days")
	f.Float64("profile-score", 0, "subject's profile completeness (0-100)")
	f.Int("last-post-days", 0, "days since the subject's last social post")
	f.Float64("leader-rating", 0, "leader average star rating")
	f.Float64("leader-reviews", 0, "leader average total reviews")
	f.Float64("leader-reviews-30", 0, "leader average reviews in the last 30 days")
	f.Float64("leader-profile-score", 0, "leader average profile completeness")
	f.Float64("leader-post-freq", 0, "leader average days between posts")

	rootCmd.AddCommand(gapsCmd)
}
