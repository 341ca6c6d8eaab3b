package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		lastPush      time.Time
		lifespanWeeks int
		expected      ActivityVerdict
	}{
		{
			name:          "push well inside the window is active",
			lastPush:      now.AddDate(0, 0, -7),
			lifespanWeeks: 36,
			expected:      VerdictActive,
		},
		{
			name:          "push a year ago with a 36 week lifespan is inactive",
			lastPush:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			lifespanWeeks: 36,
			expected:      VerdictInactive,
		},
		{
			name:          "push exactly on the cutoff counts as active",
			lastPush:      now.Add(-36 * 7 * 24 * time.Hour),
			lifespanWeeks: 36,
			expected:      VerdictActive,
		},
		{
			name:          "push one second before the cutoff is inactive",
			lastPush:      now.Add(-36*7*24*time.Hour - time.Second),
			lifespanWeeks: 36,
			expected:      VerdictInactive,
		},
		{
			name:          "future push is active",
			lastPush:      now.AddDate(0, 0, 1),
			lifespanWeeks: 1,
			expected:      VerdictActive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			verdict, err := Classify(tc.lastPush, tc.lifespanWeeks, now)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, verdict)
		})
	}
}

func TestClassify_InvalidLifespan(t *testing.T) {
	now := time.Now()
	for _, weeks := range []int{0, -1, -36} {
		_, err := Classify(now, weeks, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	_, err := Cutoff(now, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Increasing the lifespan can only turn an inactive verdict into an active
// one, never the reverse.
func TestClassify_MonotonicInLifespan(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	lastPush := now.AddDate(0, -6, 0)

	prev := VerdictInactive
	for weeks := 1; weeks <= 52; weeks++ {
		verdict, err := Classify(lastPush, weeks, now)
		require.NoError(t, err)
		if prev == VerdictActive {
			assert.Equal(t, VerdictActive, verdict, "verdict flipped back to inactive at %d weeks", weeks)
		}
		prev = verdict
	}
	assert.Equal(t, VerdictActive, prev)
}

func TestSplitFullName(t *testing.T) {
	owner, name, err := SplitFullName("octocat/hello-world")
	require.NoError(t, err)
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "hello-world", name)

	for _, bad := range []string{"", "no-slash", "/name", "owner/"} {
		_, _, err := SplitFullName(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", bad)
	}
}

func TestParseRepoSource(t *testing.T) {
	for _, valid := range []string{"owned", "watched", "starred"} {
		src, err := ParseRepoSource(valid)
		require.NoError(t, err)
		assert.Equal(t, RepoSource(valid), src)
	}

	_, err := ParseRepoSource("forked")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
