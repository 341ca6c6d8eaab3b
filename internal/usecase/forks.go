// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mshibata/gh-activity/internal/domain"
	"github.com/mshibata/gh-activity/internal/gateway"
)

// RepoVerdict pairs a repository with its activity classification.
type RepoVerdict struct {
	FullName string                 `json:"full_name"`
	Verdict  domain.ActivityVerdict `json:"verdict"`
	PushedAt time.Time              `json:"pushed_at"`
	Archived bool                   `json:"archived,omitempty"`
}

// ForkVerdict extends RepoVerdict with the strict newer-than-upstream flag.
type ForkVerdict struct {
	RepoVerdict
	Newer bool `json:"newer"`
}

// ForkReport is the result of classifying an upstream repo and its forks.
type ForkReport struct {
	Upstream RepoVerdict   `json:"upstream"`
	Forks    []ForkVerdict `json:"forks"`
}

// ForkReporter classifies a named repository and every one of its forks.
type ForkReporter struct {
	fetcher gateway.Fetcher
	logger  zerolog.Logger
}

// NewForkReporter creates a new ForkReporter instance.
func NewForkReporter(fetcher gateway.Fetcher, logger zerolog.Logger) *ForkReporter {
	return &ForkReporter{fetcher: fetcher, logger: logger}
}

// Report fetches the upstream repo and its fork list, classifying each
// against the lifespan window ending at now. Forks are reported in the
// order the API returned them.
func (r *ForkReporter) Report(ctx context.Context, repo string, lifespanWeeks int, now time.Time) (*ForkReport, error) {
	// Reject a bad lifespan before touching the network.
	if _, err := domain.Cutoff(now, lifespanWeeks); err != nil {
		return nil, err
	}

	upstream, err := r.fetcher.FetchRepo(ctx, repo)
	if err != nil {
		return nil, err
	}
	upstreamVerdict, err := domain.Classify(upstream.PushedAt, lifespanWeeks, now)
	if err != nil {
		return nil, err
	}
	r.logger.Info().Str("repo", upstream.FullName).Str("verdict", string(upstreamVerdict)).Msg("classified upstream")

	forks, err := r.fetcher.FetchForks(ctx, upstream.FullName)
	if err != nil {
		return nil, err
	}

	report := &ForkReport{
		Upstream: RepoVerdict{
			FullName: upstream.FullName,
			Verdict:  upstreamVerdict,
			PushedAt: upstream.PushedAt,
			Archived: upstream.Archived,
		},
		Forks: make([]ForkVerdict, 0, len(forks)),
	}
	for _, fork := range forks {
		verdict, err := domain.Classify(fork.PushedAt, lifespanWeeks, now)
		if err != nil {
			return nil, err
		}
		report.Forks = append(report.Forks, ForkVerdict{
			RepoVerdict: RepoVerdict{
				FullName: fork.FullName,
				Verdict:  verdict,
				PushedAt: fork.PushedAt,
				Archived: fork.Archived,
			},
			// Strictly newer: a fork pushed at the same instant as the
			// upstream is not newer.
			Newer: fork.PushedAt.After(upstream.PushedAt),
		})
	}
	r.logger.Info().Int("forks", len(report.Forks)).Msg("fork classification complete")
	return report, nil
}
