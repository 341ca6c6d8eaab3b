package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mshibata/gh-activity/internal/domain"
)

func TestForkReporter_Report(t *testing.T) {
	now := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	upstreamPush := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		upstream      domain.RepoSummary
		upstreamErr   error
		forks         []domain.RepoSummary
		forksErr      error
		expected      *ForkReport
		expectedErrIs error
	}{
		{
			name:     "happy path - classifies upstream and forks, flags newer ones",
			upstream: domain.RepoSummary{FullName: "octocat/hello", PushedAt: upstreamPush},
			forks: []domain.RepoSummary{
				// One day newer than upstream: active and newer.
				{FullName: "alice/hello", PushedAt: time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC), Parent: "octocat/hello"},
				// Identical push instant: never flagged newer.
				{FullName: "bob/hello", PushedAt: upstreamPush, Parent: "octocat/hello"},
				// Two years stale: inactive, not newer.
				{FullName: "carol/hello", PushedAt: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), Parent: "octocat/hello"},
			},
			expected: &ForkReport{
				Upstream: RepoVerdict{FullName: "octocat/hello", Verdict: domain.VerdictActive, PushedAt: upstreamPush},
				Forks: []ForkVerdict{
					{RepoVerdict: RepoVerdict{FullName: "alice/hello", Verdict: domain.VerdictActive, PushedAt: time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC)}, Newer: true},
					{RepoVerdict: RepoVerdict{FullName: "bob/hello", Verdict: domain.VerdictActive, PushedAt: upstreamPush}, Newer: false},
					{RepoVerdict: RepoVerdict{FullName: "carol/hello", Verdict: domain.VerdictInactive, PushedAt: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)}, Newer: false},
				},
			},
		},
		{
			name:     "empty fork list yields an empty section, not an error",
			upstream: domain.RepoSummary{FullName: "octocat/hello", PushedAt: upstreamPush},
			forks:    []domain.RepoSummary{},
			expected: &ForkReport{
				Upstream: RepoVerdict{FullName: "octocat/hello", Verdict: domain.VerdictActive, PushedAt: upstreamPush},
				Forks:    []ForkVerdict{},
			},
		},
		{
			name:          "missing upstream surfaces not found",
			upstreamErr:   domain.ErrNotFound,
			expectedErrIs: domain.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			fetcher.On("FetchRepo", mock.Anything, "octocat/hello").Return(tc.upstream, tc.upstreamErr)
			if tc.upstreamErr == nil {
				fetcher.On("FetchForks", mock.Anything, "octocat/hello").Return(tc.forks, tc.forksErr)
			}

			reporter := NewForkReporter(fetcher, zerolog.Nop())
			report, err := reporter.Report(context.Background(), "octocat/hello", 36, now)

			if tc.expectedErrIs != nil {
				assert.ErrorIs(t, err, tc.expectedErrIs)
				assert.Nil(t, report)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, report)
			}
			fetcher.AssertExpectations(t)
		})
	}
}

func TestForkReporter_Report_InvalidLifespan(t *testing.T) {
	fetcher := new(mockFetcher)
	reporter := NewForkReporter(fetcher, zerolog.Nop())

	_, err := reporter.Report(context.Background(), "octocat/hello", 0, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// The guard fires before any fetch.
	fetcher.AssertNotCalled(t, "FetchRepo")
}
