// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mshibata/gh-activity/internal/gateway"
	"github.com/mshibata/gh-activity/pkg/config"
	"github.com/mshibata/gh-activity/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gh-activity",
	Short: "A CLI tool to audit GitHub repository activity and traffic.",
	Long: `gh-activity reports whether repositories are still active within a
configurable lifespan window: a repo and its forks, the repos a user owns,
watches or has starred, or a ranked traffic report persisted across runs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Emit the report as JSON instead of a table")
}

// setup loads the configuration, builds the logger and constructs the
// GitHub gateway. Shared by every report command.
func setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, gateway.Fetcher, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	conf, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	log := logger.New(conf.LogLevel, verbose)

	fetcher, err := gateway.NewGitHubGateway(conf.Token, log)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	return conf, log, fetcher, nil
}

// lifespanWeeks resolves the effective lifespan: the flag when given,
// otherwise the configured default.
func lifespanWeeks(cmd *cobra.Command, conf *config.Config) int {
	if cmd.Flags().Changed("lifespan") {
		weeks, _ := cmd.Flags().GetInt("lifespan")
		return weeks
	}
	return conf.LifespanWeeks
}

// printJSON pretty-prints a report to stdout.
func printJSON(report any) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// fail prints one terminal message for the run and exits non-zero.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
