package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mshibata/gh-activity/internal/domain"
	"github.com/mshibata/gh-activity/internal/gateway"
	"github.com/mshibata/gh-activity/internal/history"
)

// TrafficReport ranks a user's active repositories by view traffic.
type TrafficReport struct {
	Ranked  []domain.RepoTraffic  `json:"ranked"`
	Summary domain.TrafficSummary `json:"summary"`
}

// TrafficReporter builds the ranking and maintains the persisted traffic
// history across runs.
type TrafficReporter struct {
	fetcher gateway.Fetcher
	store   *history.Store
	logger  zerolog.Logger
}

// NewTrafficReporter creates a new TrafficReporter instance.
func NewTrafficReporter(fetcher gateway.Fetcher, store *history.Store, logger zerolog.Logger) *TrafficReporter {
	return &TrafficReporter{fetcher: fetcher, store: store, logger: logger}
}

// Report lists the user's repositories (or the organization's when org is
// non-empty), drops repos outside the lifespan window, collects traffic
// figures for the rest and ranks them by view count. The merged history is
// written back only after every fetch succeeded.
func (t *TrafficReporter) Report(ctx context.Context, user, org string, lifespanWeeks int, now time.Time) (*TrafficReport, error) {
	if _, err := domain.Cutoff(now, lifespanWeeks); err != nil {
		return nil, err
	}
	if user == "" && org == "" {
		return nil, fmt.Errorf("either a user or an organization is required: %w", domain.ErrInvalidInput)
	}

	// A corrupt history file aborts before any API traffic is spent.
	hist, err := t.store.Load()
	if err != nil {
		return nil, err
	}

	var repos []domain.RepoSummary
	if org != "" {
		repos, err = t.fetcher.FetchOrgRepos(ctx, org)
	} else {
		repos, err = t.fetcher.FetchUserRepos(ctx, user, domain.SourceOwned)
	}
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RepoTraffic, 0, len(repos))
	for _, repo := range repos {
		verdict, err := domain.Classify(repo.PushedAt, lifespanWeeks, now)
		if err != nil {
			return nil, err
		}
		if verdict != domain.VerdictActive {
			t.logger.Debug().Str("repo", repo.FullName).Msg("skipping inactive repo")
			continue
		}

		views, err := t.fetcher.FetchViewTraffic(ctx, repo.FullName)
		if err != nil {
			return nil, err
		}
		clones, err := t.fetcher.FetchCloneTraffic(ctx, repo.FullName)
		if err != nil {
			return nil, err
		}
		stars, err := t.fetcher.FetchStargazerCount(ctx, repo.FullName)
		if err != nil {
			return nil, err
		}
		forks, err := t.fetcher.FetchForks(ctx, repo.FullName)
		if err != nil {
			return nil, err
		}
		activeForks := 0
		for _, fork := range forks {
			forkVerdict, err := domain.Classify(fork.PushedAt, lifespanWeeks, now)
			if err != nil {
				return nil, err
			}
			if forkVerdict == domain.VerdictActive {
				activeForks++
			}
		}

		hist.Merge(repo.FullName, history.MetricViews, views.Samples)
		hist.Merge(repo.FullName, history.MetricClones, clones.Samples)

		traffic := domain.RepoTraffic{
			FullName:    repo.FullName,
			Archived:    repo.Archived,
			Views:       hist.Total(repo.FullName, history.MetricViews),
			Clones:      hist.Total(repo.FullName, history.MetricClones),
			Stars:       stars,
			ActiveForks: activeForks,
		}
		traffic.ComputeScore()
		ranked = append(ranked, traffic)
	}

	domain.RankByViews(ranked)

	// Write-after-success: every fetch above completed, so the merged
	// history can replace the file.
	if err := t.store.Save(hist); err != nil {
		return nil, err
	}
	t.logger.Info().Int("repos", len(ranked)).Msg("traffic ranking complete")

	return &TrafficReport{
		Ranked:  ranked,
		Summary: domain.SummarizeViews(ranked),
	}, nil
}
