package domain

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// TrafficSample is a single per-day traffic data point as reported by the
// hosting platform and as persisted in the history file.
type TrafficSample struct {
	Timestamp time.Time `json:"timestamp"`
	Uniques   int       `json:"uniques"`
}

// RepoTraffic holds the accumulated traffic figures for one repository
// within a traffic report.
type RepoTraffic struct {
	FullName    string `json:"full_name"`
	Archived    bool   `json:"archived,omitempty"`
	Views       int    `json:"views"`
	Clones      int    `json:"clones"`
	Stars       int    `json:"stars"`
	ActiveForks int    `json:"active_forks"`
	Score       int    `json:"score"`
}

// ComputeScore weighs the traffic signals into a single composite number.
func (t *RepoTraffic) ComputeScore() {
	t.Score = t.ActiveForks*8 + t.Stars*4 + t.Clones*2 + t.Views
}

// RankByViews sorts repos descending by view count; ties are broken by
// full name ascending so the order is total and deterministic.
func RankByViews(repos []RepoTraffic) {
	sort.Slice(repos, func(i, j int) bool {
		if repos[i].Views != repos[j].Views {
			return repos[i].Views > repos[j].Views
		}
		return repos[i].FullName < repos[j].FullName
	})
}

// TrafficSummary aggregates view counts across a ranked report.
type TrafficSummary struct {
	Repos       int     `json:"repos"`
	TotalViews  int     `json:"total_views"`
	MeanViews   float64 `json:"mean_views"`
	MedianViews float64 `json:"median_views"`
	MaxViews    float64 `json:"max_views"`
}

// SummarizeViews computes summary statistics over the view counts of a
// ranked report. An empty report yields a zero summary.
func SummarizeViews(repos []RepoTraffic) TrafficSummary {
	if len(repos) == 0 {
		return TrafficSummary{}
	}
	views := make(stats.Float64Data, 0, len(repos))
	total := 0
	for _, r := range repos {
		views = append(views, float64(r.Views))
		total += r.Views
	}
	// These only fail on empty input, which is guarded above.
	mean, _ := stats.Mean(views)
	median, _ := stats.Median(views)
	max, _ := stats.Max(views)
	return TrafficSummary{
		Repos:       len(repos),
		TotalViews:  total,
		MeanViews:   mean,
		MedianViews: median,
		MaxViews:    max,
	}
}
