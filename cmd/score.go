package main

import (
	"github.com/spf13/cobra"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/category"
	"github.com/ibrhmmrana/hunter2.0-sub002/internal/match"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a candidate place against a subject's category context",
	Long: `Builds the subject's category context from --primary/--legacy/--categories,
extracts the candidate's comparable categories from its type tags and name,
and reports the additive match score plus anchor filter verdict.

Examples:
  compete score --primary "Thai Restaurant" \
    --candidate-types thai_restaurant,restaurant --candidate-name "Bangkok Kitchen"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		primary, _ := cmd.Flags().GetString("primary")
		legacy, _ := cmd.Flags().GetString("legacy")
		categories, _ := cmd.Flags().GetStringSlice("categories")
		candTypes, _ := cmd.Flags().GetStringSlice("candidate-types")
		candPrimary, _ := cmd.Flags().GetString("candidate-primary")
		candName, _ := cmd.Flags().GetString("candidate-name")

		catCtx := category.BuildContext(primary, legacy, categories)
		cats := category.ExtractCandidateCategories(candTypes, candPrimary, candName)
		result := match.Score(catCtx, cats)
		anchor := match.NewAnchor(catCtx.Primary)

		return printJSON(struct {
			Context             category.Context `json:"context"`
			CandidateCategories []string         `json:"candidate_categories"`
			Score               int              `json:"score"`
			VerticalMatch       bool             `json:"vertical_match"`
			AnchorPasses        bool             `json:"anchor_passes"`
		}{
			Context:             catCtx,
			CandidateCategories: cats,
			Score:               result.Score,
			VerticalMatch:       result.VerticalMatch,
			AnchorPasses:        anchor.Passes(candTypes, candName),
		})
	},
}

func init() {
	f := scoreCmd.Flags()
	f.String("primary", "", "subject's declared primary category")
	f.String("legacy", "", "subject's legacy category field")
	f.StringSlice("categories", nil, "subject's additional category labels")
	f.StringSlice("candidate-types", nil, "candidate's raw place type tags")
	f.String("candidate-primary", "", "candidate's declared primary type")
	f.String("candidate-name", "", "candidate's display name")

	rootCmd.AddCommand(scoreCmd)
}
