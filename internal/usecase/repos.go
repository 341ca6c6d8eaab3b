package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mshibata/gh-activity/internal/domain"
	"github.com/mshibata/gh-activity/internal/gateway"
)

// UserRepoReport lists a user's repositories with their activity verdicts.
type UserRepoReport struct {
	User   string            `json:"user"`
	Source domain.RepoSource `json:"source"`
	Repos  []RepoVerdict     `json:"repos"`
}

// RepoReporter classifies the repositories a user owns, watches or has starred.
type RepoReporter struct {
	fetcher gateway.Fetcher
	logger  zerolog.Logger
}

// NewRepoReporter creates a new RepoReporter instance.
func NewRepoReporter(fetcher gateway.Fetcher, logger zerolog.Logger) *RepoReporter {
	return &RepoReporter{fetcher: fetcher, logger: logger}
}

// Report fetches the repo set selected by source and classifies each repo
// independently, preserving the API return order.
func (r *RepoReporter) Report(ctx context.Context, user, source string, lifespanWeeks int, now time.Time) (*UserRepoReport, error) {
	// Both guards run before any network call.
	src, err := domain.ParseRepoSource(source)
	if err != nil {
		return nil, err
	}
	if _, err := domain.Cutoff(now, lifespanWeeks); err != nil {
		return nil, err
	}

	repos, err := r.fetcher.FetchUserRepos(ctx, user, src)
	if err != nil {
		return nil, err
	}

	report := &UserRepoReport{
		User:   user,
		Source: src,
		Repos:  make([]RepoVerdict, 0, len(repos)),
	}
	for _, repo := range repos {
		verdict, err := domain.Classify(repo.PushedAt, lifespanWeeks, now)
		if err != nil {
			return nil, err
		}
		report.Repos = append(report.Repos, RepoVerdict{
			FullName: repo.FullName,
			Verdict:  verdict,
			PushedAt: repo.PushedAt,
			Archived: repo.Archived,
		})
	}
	r.logger.Info().Str("user", user).Str("source", string(src)).Int("repos", len(report.Repos)).Msg("repo classification complete")
	return report, nil
}
