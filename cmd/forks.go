package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mshibata/gh-activity/internal/usecase"
)

var forksCmd = &cobra.Command{
	Use:   "forks",
	Short: "Classifies a repository and every one of its forks as active or inactive",
	Long: `Fetches a repository and its full fork list, classifies each against the
lifespan window and flags forks whose last push is newer than the upstream's.`,
	Run: func(cmd *cobra.Command, args []string) {
		conf, log, fetcher, err := setup(cmd)
		if err != nil {
			fail(err)
		}

		repo, _ := cmd.Flags().GetString("repo")
		reporter := usecase.NewForkReporter(fetcher, log)

		report, err := reporter.Report(context.Background(), repo, lifespanWeeks(cmd, conf), time.Now())
		if err != nil {
			fail(err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := printJSON(report); err != nil {
				fail(err)
			}
			return
		}

		fmt.Printf("%s is %s (last push %s)\n",
			report.Upstream.FullName, report.Upstream.Verdict,
			report.Upstream.PushedAt.Format(time.RFC3339))

		if len(report.Forks) == 0 {
			fmt.Println("No forks.")
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "FORK\tVERDICT\tNEWER\tLAST PUSH")
		for _, fork := range report.Forks {
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\n",
				archivedName(fork.FullName, fork.Archived), fork.Verdict, fork.Newer,
				fork.PushedAt.Format(time.RFC3339))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(forksCmd)
	forksCmd.Flags().StringP("repo", "r", "", "Upstream repository as owner/name (required)")
	forksCmd.MarkFlagRequired("repo")
	forksCmd.Flags().IntP("lifespan", "l", 0, "Lifespan window in weeks (default 36)")
}

func archivedName(fullName string, archived bool) string {
	if archived {
		return "[archived] " + fullName
	}
	return fullName
}
