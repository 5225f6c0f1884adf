package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var (
		user  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge-point usage across error items",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUser(user)
			if err != nil {
				return err
			}
			svc, err := ctx.tagService()
			if err != nil {
				return err
			}
			res, err := svc.Stats(cmd.Context(), userID)
			if err != nil {
				return err
			}

			stats := res.Stats
			if limit > 0 && len(stats) > limit {
				stats = stats[:limit]
			}
			rows := make([][]string, 0, len(stats))
			for _, st := range stats {
				rows = append(rows, []string{st.Tag, strconv.Itoa(st.Count)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Tag", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
			fmt.Fprintf(out, "total=%d unique=%d\n", res.Total, res.UniqueTags)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "Restrict to one user ID")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many tags")
	return cmd
}
