package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/insights"
	"github.com/ibrhmmrana/hunter2.0-sub002/pkg/places"
)

var reportCmd = &cobra.Command{
	Use:   "report <subject-id>",
	Short: "Build a full competitive insights report for a business",
	Long: `Classifies the subject, retrieves nearby candidates from the Places API,
scores and filters them, persists the survivors as competitor rows, and runs
the gap analysis against the top-scored leaders.

Examples:
  compete report subj-123 --name "Siam Kitchen" --primary "Thai Restaurant" \
    --lat -26.19 --lng 28.03 --rating 4.2 --reviews 40`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("report"); err != nil {
			return err
		}

		f := cmd.Flags()
		subject := insights.Subject{ID: args[0]}
		subject.Name, _ = f.GetString("name")
		subject.PrimaryCategory, _ = f.GetString("primary")
		subject.LegacyCategory, _ = f.GetString("legacy")
		subject.Categories, _ = f.GetStringSlice("categories")

		if f.Changed("lat") && f.Changed("lng") {
			lat, _ := f.GetFloat64("lat")
			lng, _ := f.GetFloat64("lng")
			subject.Location = &places.LatLng{Latitude: lat, Longitude: lng}
		}
		if f.Changed("rating") {
			v, _ := f.GetFloat64("rating")
			subject.Rating = &v
		}
		if f.Changed("reviews") {
			v, _ := f.GetInt("reviews")
			subject.ReviewsTotal = &v
		}
		if f.Changed("reviews-30") {
			v, _ := f.GetInt("reviews-30")
			subject.ReviewsLast30 = &v
		}
		if f.Changed("profile-score") {
			v, _ := f.GetFloat64("profile-score")
			subject.ProfileScore = &v
		}
		if f.Changed("last-post-days") {
			v, _ := f.GetInt("last-post-days")
			subject.LastPostAgeDays = &v
		}

		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		client := places.NewClient(cfg.Places.Key,
			places.WithBaseURL(cfg.Places.BaseURL),
			places.WithRateLimit(cfg.Places.RateLimitRPS, cfg.Places.RateBurst),
		)

		builder := insights.NewBuilder(client, store, insights.WithRadius(cfg.Insights.RadiusMeters))
		report, err := builder.BuildReport(ctx, subject)
		if err != nil {
			return err
		}

		zap.L().Info("report complete",
			zap.String("subject_id", subject.ID),
			zap.Int("competitors", len(report.Competitors)),
			zap.Int("overall_score", report.Gaps.OverallScore),
		)
		return printJSON(report)
	},
}

func init() {
	f := reportCmd.Flags()
	f.String("name", "", "subject's display name")
	f.String("primary", "", "subject's declared primary category")
	f.String("legacy", "", "subject's legacy category field")
	f.StringSlice("categories", nil, "subject's additional category labels")
	f.Float64("lat", 0, "subject latitude")
	f.Float64("lng", 0, "subject longitude")
	f.Float64("rating", 0, "subject's star rating (0-5)")
	f.Int("reviews", 0, "subject's total review count")
	f.Int("reviews-30", 0, "subject's reviews in the last 30 days")
	f.Float64("profile-score", 0, "subject's profile completeness (0-100)")
	f.Int("last-post-days", 0, "days since the subject's last social post")

	rootCmd.AddCommand(reportCmd)
}
