package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mshibata/gh-activity/internal/domain"
	"github.com/mshibata/gh-activity/internal/gateway"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchRepo(ctx context.Context, fullName string) (domain.RepoSummary, error) {
	args := m.Called(ctx, fullName)
	return args.Get(0).(domain.RepoSummary), args.Error(1)
}

func (m *mockFetcher) FetchForks(ctx context.Context, fullName string) ([]domain.RepoSummary, error) {
	args := m.Called(ctx, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepoSummary), args.Error(1)
}

func (m *mockFetcher) FetchUserRepos(ctx context.Context, user string, source domain.RepoSource) ([]domain.RepoSummary, error) {
	args := m.Called(ctx, user, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepoSummary), args.Error(1)
}

func (m *mockFetcher) FetchOrgRepos(ctx context.Context, org string) ([]domain.RepoSummary, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepoSummary), args.Error(1)
}

func (m *mockFetcher) FetchViewTraffic(ctx context.Context, fullName string) (gateway.TrafficPage, error) {
	args := m.Called(ctx, fullName)
	return args.Get(0).(gateway.TrafficPage), args.Error(1)
}

func (m *mockFetcher) FetchCloneTraffic(ctx context.Context, fullName string) (gateway.TrafficPage, error) {
	args := m.Called(ctx, fullName)
	return args.Get(0).(gateway.TrafficPage), args.Error(1)
}

func (m *mockFetcher) FetchStargazerCount(ctx context.Context, fullName string) (int, error) {
	args := m.Called(ctx, fullName)
	return args.Int(0), args.Error(1)
}
