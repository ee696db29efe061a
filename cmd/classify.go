package main

import (
	"github.com/spf13/cobra"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/category"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [category...]",
	Short: "Build the canonical category context for a business",
	Long: `Normalizes the given category labels, derives the primary comparable
category and top-3 set, and classifies the business into a vertical.

Examples:
  # A Thai restaurant with extra labels
  compete classify --primary "Thai Restaurant" "Asian Restaurant" "Restaurant"

  # Raw type tags only
  compete classify grocery_or_supermarket convenience_store`,
	RunE: func(cmd *cobra.Command, args []string) error {
		primary, _ := cmd.Flags().GetString("primary")
		legacy, _ := cmd.Flags().GetString("legacy")

		return printJSON(category.BuildContext(primary, legacy, args))
	},
}

func init() {
	f := classifyCmd.Flags()
	f.String("primary", "", "declared primary category")
	f.String("legacy", "", "legacy single-category field")

	rootCmd.AddCommand(classifyCmd)
}
