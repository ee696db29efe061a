package main

import (
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/compete"
)

var competitorsCmd = &cobra.Command{
	Use:   "competitors <subject-id>",
	Short: "Fetch the next page of competitors for a subject",
	Long: `Pages through stored competitor rows using the tiered retrieval ladder.
The first call starts a session; pass the printed next_cursor back via
--cursor to continue it.

Examples:
  compete competitors subj-123
  compete competitors subj-123 --cursor '{"session_id":"...","tier":1,"offset":6,"excluded_ids":["..."]}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("store"); err != nil {
			return err
		}

		cursorJSON, _ := cmd.Flags().GetString("cursor")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		var cursor compete.Cursor
		if cursorJSON != "" {
			if err := json.Unmarshal([]byte(cursorJSON), &cursor); err != nil {
				return eris.Wrap(err, "competitors: parse --cursor")
			}
		}

		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		page, err := compete.NewLadder(store).FetchMore(ctx, args[0], cursor, pageSize)
		if err != nil {
			return err
		}

		return printJSON(page)
	},
}

func init() {
	f := competitorsCmd.Flags()
	f.String("cursor", "", "next_cursor JSON from the previous page")
	f.Int("page-size", 0, "page size (default 6)")

	rootCmd.AddCommand(competitorsCmd)
}
