package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mshibata/gh-activity/internal/history"
	"github.com/mshibata/gh-activity/internal/usecase"
)

var trafficCmd = &cobra.Command{
	Use:   "traffic",
	Short: "Ranks active repositories by view traffic and records the history",
	Long: `Fetches traffic figures for every active repository of a user (or an
organization), ranks them by view count and appends the per-day samples to a
JSON history file so counts accumulate across runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		conf, log, fetcher, err := setup(cmd)
		if err != nil {
			fail(err)
		}

		user, _ := cmd.Flags().GetString("user")
		org, _ := cmd.Flags().GetString("org")
		historyFile := conf.HistoryFile
		if cmd.Flags().Changed("history") {
			historyFile, _ = cmd.Flags().GetString("history")
		}

		store := history.NewStore(historyFile, log)
		reporter := usecase.NewTrafficReporter(fetcher, store, log)

		report, err := reporter.Report(context.Background(), user, org, lifespanWeeks(cmd, conf), time.Now())
		if err != nil {
			fail(err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := printJSON(report); err != nil {
				fail(err)
			}
			return
		}

		if len(report.Ranked) == 0 {
			fmt.Println("No active repos to report.")
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "REPO\tSCORE\tVIEWS\tCLONES\tSTARS\tACTIVE FORKS")
		for _, repo := range report.Ranked {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n",
				archivedName(repo.FullName, repo.Archived),
				repo.Score, repo.Views, repo.Clones, repo.Stars, repo.ActiveForks)
		}
		w.Flush()
		fmt.Printf("\n%d repos, %d total views (mean %.1f, median %.1f, max %.0f)\n",
			report.Summary.Repos, report.Summary.TotalViews,
			report.Summary.MeanViews, report.Summary.MedianViews, report.Summary.MaxViews)
	},
}

func init() {
	rootCmd.AddCommand(trafficCmd)
	trafficCmd.Flags().StringP("user", "u", "", "GitHub user whose repos to rank")
	trafficCmd.Flags().StringP("org", "o", "", "Rank an organization's repos instead of the user's")
	trafficCmd.Flags().IntP("lifespan", "l", 0, "Lifespan window in weeks (default 36)")
	trafficCmd.Flags().String("history", "", "Path of the traffic history JSON file")
}
