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

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Flags each of a user's repositories as active or inactive",
	Long: `Lists the repositories a user owns, watches or has starred and classifies
each one against the lifespan window, preserving the API return order.`,
	Run: func(cmd *cobra.Command, args []string) {
		conf, log, fetcher, err := setup(cmd)
		if err != nil {
			fail(err)
		}

		user, _ := cmd.Flags().GetString("user")
		source, _ := cmd.Flags().GetString("source")
		reporter := usecase.NewRepoReporter(fetcher, log)

		report, err := reporter.Report(context.Background(), user, source, lifespanWeeks(cmd, conf), time.Now())
		if err != nil {
			fail(err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := printJSON(report); err != nil {
				fail(err)
			}
			return
		}

		if len(report.Repos) == 0 {
			fmt.Printf("No %s repos for %s.\n", report.Source, report.User)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "REPO\tVERDICT\tLAST PUSH")
		for _, repo := range report.Repos {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				archivedName(repo.FullName, repo.Archived), repo.Verdict,
				repo.PushedAt.Format(time.RFC3339))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(reposCmd)
	reposCmd.Flags().StringP("user", "u", "", "GitHub user name (required)")
	reposCmd.MarkFlagRequired("user")
	reposCmd.Flags().StringP("source", "s", "owned", "Which repo set to list: owned, watched or starred")
	reposCmd.Flags().IntP("lifespan", "l", 0, "Lifespan window in weeks (default 36)")
}
