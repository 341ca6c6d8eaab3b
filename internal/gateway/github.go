// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/mshibata/gh-activity/internal/domain"
)

const (
	perPage = 100
	// pageLimit caps paginated listings; huge fork networks would
	// otherwise burn the whole rate limit in one run.
	pageLimit = 10

	httpTimeout = 30 * time.Second
)

// TrafficPage holds one metric's traffic figures for a repository:
// the total unique count for the period plus the per-day breakdown.
type TrafficPage struct {
	Uniques int
	Samples []domain.TrafficSample
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchRepo(ctx context.Context, fullName string) (domain.RepoSummary, error)
	FetchForks(ctx context.Context, fullName string) ([]domain.RepoSummary, error)
	FetchUserRepos(ctx context.Context, user string, source domain.RepoSource) ([]domain.RepoSummary, error)
	FetchOrgRepos(ctx context.Context, org string) ([]domain.RepoSummary, error)
	FetchViewTraffic(ctx context.Context, fullName string) (TrafficPage, error)
	FetchCloneTraffic(ctx context.Context, fullName string) (TrafficPage, error)
	FetchStargazerCount(ctx context.Context, fullName string) (int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        zerolog.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger zerolog.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
		Timeout: httpTimeout,
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchRepo(ctx context.Context, fullName string) (domain.RepoSummary, error) {
	owner, name, err := domain.SplitFullName(fullName)
	if err != nil {
		return domain.RepoSummary{}, err
	}
	g.logger.Debug().Str("repo", fullName).Msg("fetching repository metadata")
	repo, _, err := g.restClient.Repositories.Get(ctx, owner, name)
	if err != nil {
		return domain.RepoSummary{}, wrapAPIError(fmt.Sprintf("failed to fetch repo %s", fullName), err)
	}
	return toRepoSummary(repo), nil
}

func (g *GitHubGateway) FetchForks(ctx context.Context, fullName string) ([]domain.RepoSummary, error) {
	owner, name, err := domain.SplitFullName(fullName)
	if err != nil {
		return nil, err
	}
	g.logger.Debug().Str("repo", fullName).Msg("fetching fork list")
	opts := &github.RepositoryListForksOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	var forks []domain.RepoSummary
	for page := 1; ; page++ {
		if page > pageLimit {
			g.logger.Warn().Str("repo", fullName).Int("limit", pageLimit).Msg("fork list exceeds page limit, truncating")
			break
		}
		result, resp, err := g.restClient.Repositories.ListForks(ctx, owner, name, opts)
		if err != nil {
			return nil, wrapAPIError(fmt.Sprintf("failed to list forks of %s", fullName), err)
		}
		for _, fork := range result {
			summary := toRepoSummary(fork)
			summary.Parent = fullName
			forks = append(forks, summary)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug().Int("page", resp.NextPage).Msg("fetching next page of forks")
	}
	return forks, nil
}

func (g *GitHubGateway) FetchUserRepos(ctx context.Context, user string, source domain.RepoSource) ([]domain.RepoSummary, error) {
	g.logger.Debug().Str("user", user).Str("source", string(source)).Msg("fetching user repositories")
	switch source {
	case domain.SourceOwned:
		return g.fetchOwnedRepos(ctx, user)
	case domain.SourceWatched:
		return g.fetchWatchedRepos(ctx, user)
	case domain.SourceStarred:
		return g.fetchStarredRepos(ctx, user)
	}
	return nil, fmt.Errorf("unknown repo source %q: %w", source, domain.ErrInvalidInput)
}

func (g *GitHubGateway) fetchOwnedRepos(ctx context.Context, user string) ([]domain.RepoSummary, error) {
	opts := &github.RepositoryListByUserOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	var repos []domain.RepoSummary
	for page := 1; ; page++ {
		if page > pageLimit {
			g.logger.Warn().Str("user", user).Int("limit", pageLimit).Msg("repo list exceeds page limit, truncating")
			break
		}
		result, resp, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, wrapAPIError(fmt.Sprintf("failed to list repos of user %s", user), err)
		}
		for _, repo := range result {
			repos = append(repos, toRepoSummary(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func (g *GitHubGateway) fetchWatchedRepos(ctx context.Context, user string) ([]domain.RepoSummary, error) {
	opts := &github.ListOptions{PerPage: perPage}
	var repos []domain.RepoSummary
	for page := 1; ; page++ {
		if page > pageLimit {
			g.logger.Warn().Str("user", user).Int("limit", pageLimit).Msg("watched list exceeds page limit, truncating")
			break
		}
		result, resp, err := g.restClient.Activity.ListWatched(ctx, user, opts)
		if err != nil {
			return nil, wrapAPIError(fmt.Sprintf("failed to list watched repos of user %s", user), err)
		}
		for _, repo := range result {
			repos = append(repos, toRepoSummary(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func (g *GitHubGateway) fetchStarredRepos(ctx context.Context, user string) ([]domain.RepoSummary, error) {
	opts := &github.ActivityListStarredOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	var repos []domain.RepoSummary
	for page := 1; ; page++ {
		if page > pageLimit {
			g.logger.Warn().Str("user", user).Int("limit", pageLimit).Msg("starred list exceeds page limit, truncating")
			break
		}
		result, resp, err := g.restClient.Activity.ListStarred(ctx, user, opts)
		if err != nil {
			return nil, wrapAPIError(fmt.Sprintf("failed to list starred repos of user %s", user), err)
		}
		for _, starred := range result {
			repos = append(repos, toRepoSummary(starred.GetRepository()))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func (g *GitHubGateway) FetchOrgRepos(ctx context.Context, org string) ([]domain.RepoSummary, error) {
	g.logger.Debug().Str("org", org).Msg("fetching organization repositories")
	opts := &github.RepositoryListByOrgOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	var repos []domain.RepoSummary
	for page := 1; ; page++ {
		if page > pageLimit {
			g.logger.Warn().Str("org", org).Int("limit", pageLimit).Msg("org repo list exceeds page limit, truncating")
			break
		}
		result, resp, err := g.restClient.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, wrapAPIError(fmt.Sprintf("failed to list repos of org %s", org), err)
		}
		for _, repo := range result {
			repos = append(repos, toRepoSummary(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func (g *GitHubGateway) FetchViewTraffic(ctx context.Context, fullName string) (TrafficPage, error) {
	owner, name, err := domain.SplitFullName(fullName)
	if err != nil {
		return TrafficPage{}, err
	}
	g.logger.Debug().Str("repo", fullName).Msg("fetching view traffic")
	views, _, err := g.restClient.Repositories.ListTrafficViews(ctx, owner, name, nil)
	if err != nil {
		return TrafficPage{}, wrapAPIError(fmt.Sprintf("failed to fetch view traffic for %s", fullName), err)
	}
	return TrafficPage{
		Uniques: views.GetUniques(),
		Samples: toTrafficSamples(views.Views),
	}, nil
}

func (g *GitHubGateway) FetchCloneTraffic(ctx context.Context, fullName string) (TrafficPage, error) {
	owner, name, err := domain.SplitFullName(fullName)
	if err != nil {
		return TrafficPage{}, err
	}
	g.logger.Debug().Str("repo", fullName).Msg("fetching clone traffic")
	clones, _, err := g.restClient.Repositories.ListTrafficClones(ctx, owner, name, nil)
	if err != nil {
		return TrafficPage{}, wrapAPIError(fmt.Sprintf("failed to fetch clone traffic for %s", fullName), err)
	}
	return TrafficPage{
		Uniques: clones.GetUniques(),
		Samples: toTrafficSamples(clones.Clones),
	}, nil
}

// stargazerQuery fetches the star count over GraphQL instead of paging
// through the REST stargazer listing.
type stargazerQuery struct {
	Repository struct {
		StargazerCount int
	} `graphql:"repository(owner: $owner, name: $name)"`
}

func (g *GitHubGateway) FetchStargazerCount(ctx context.Context, fullName string) (int, error) {
	owner, name, err := domain.SplitFullName(fullName)
	if err != nil {
		return 0, err
	}
	g.logger.Debug().Str("repo", fullName).Msg("fetching stargazer count")
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}
	var q stargazerQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to fetch stargazer count for %s: %v: %w", fullName, err, domain.ErrNetwork)
	}
	return q.Repository.StargazerCount, nil
}

func toRepoSummary(repo *github.Repository) domain.RepoSummary {
	return domain.RepoSummary{
		FullName: repo.GetFullName(),
		PushedAt: repo.GetPushedAt().Time,
		Archived: repo.GetArchived(),
		Parent:   repo.GetParent().GetFullName(),
	}
}

func toTrafficSamples(data []*github.TrafficData) []domain.TrafficSample {
	samples := make([]domain.TrafficSample, 0, len(data))
	for _, d := range data {
		samples = append(samples, domain.TrafficSample{
			Timestamp: d.GetTimestamp().Time,
			Uniques:   d.GetUniques(),
		})
	}
	return samples
}

// wrapAPIError maps a go-github error onto the domain error taxonomy.
func wrapAPIError(op string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrNetwork)
}
