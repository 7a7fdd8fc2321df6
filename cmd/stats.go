package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/mathgen/internal/store"
	"github.com/abhisek/mathgen/internal/ui/theme"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the generation log",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.EventRepo()
		sum, err := repo.Summary(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if sum.Calls == 0 {
			fmt.Fprintln(out, "No generation runs recorded yet.")
			return nil
		}

		fmt.Fprintln(out, theme.Title.Render("Generation log"))
		fmt.Fprintf(out, "Runs:        %d (last %s)\n", sum.Calls, sum.LastAt.Local().Format(time.DateTime))
		fmt.Fprintf(out, "Questions:   %d produced / %d requested\n", sum.Produced, sum.Requested)
		fmt.Fprintf(out, "Collisions:  %d\n", sum.Collisions)
		fmt.Fprintf(out, "Degraded:    %d\n", sum.Degraded)
		fmt.Fprintf(out, "Failures:    %d\n", sum.Failures)
		fmt.Fprintf(out, "Avg latency: %.1f ms\n\n", sum.AvgLatencyMs)

		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%5s  %-14s  %5s  %5s  %9s",
			"Grade", "Category", "Level", "Runs", "Produced")))
		fmt.Fprintln(out, theme.Rule.Render(strings.Repeat("─", 46)))
		for _, sc := range sum.Scopes {
			fmt.Fprintf(out, "%5d  %-14s  %5d  %5d  %4d/%-4d\n",
				sc.Grade, sc.Category, sc.Level, sc.Calls, sc.Produced, sc.Requested)
		}

		if recent <= 0 {
			return nil
		}
		events, err := repo.RecentGenerations(ctx, recent)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Title.Render("Recent runs"))
		for _, e := range events {
			seed := e.Seed
			if seed == "" {
				seed = "-"
			}
			fmt.Fprintf(out, "%s  %-8s  g%d %s L%d  %d/%d  seed=%s  %dms\n",
				e.Timestamp.Local().Format(time.DateTime), e.Command,
				e.Grade, e.Category, e.Level, e.Produced, e.Requested, seed, e.LatencyMs)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("recent", 5, "Number of recent runs to list (0 to hide)")
}
