// Package history persists per-repository traffic samples across runs as a
// single JSON document on disk.
package history

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/mshibata/gh-activity/internal/domain"
)

// Metric names under which samples are recorded.
const (
	MetricViews  = "views"
	MetricClones = "clones"
)

// History maps a repository full name to its per-metric ordered sample
// sequences. Samples within a metric are ordered oldest first.
type History map[string]map[string][]domain.TrafficSample

// Merge appends the given samples to the repo's sequence for the metric,
// keeping only samples strictly newer than the newest one already stored.
// It returns the number of samples appended.
func (h History) Merge(repo, metric string, samples []domain.TrafficSample) int {
	if _, ok := h[repo]; !ok {
		h[repo] = make(map[string][]domain.TrafficSample)
	}
	stored := h[repo][metric]
	appended := 0
	for _, sample := range samples {
		if len(stored) > 0 && !sample.Timestamp.After(stored[len(stored)-1].Timestamp) {
			continue
		}
		stored = append(stored, sample)
		appended++
	}
	h[repo][metric] = stored
	return appended
}

// Total sums the unique counts recorded for a repo and metric.
func (h History) Total(repo, metric string) int {
	total := 0
	for _, sample := range h[repo][metric] {
		total += sample.Uniques
	}
	return total
}

// Store reads and writes a History document at a fixed path.
type Store struct {
	path   string
	logger zerolog.Logger
}

func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the persisted history. A missing file starts an empty history;
// a file that exists but cannot be parsed aborts the run so the prior
// history is never silently thrown away.
func (s *Store) Load() (History, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn().Str("path", s.path).Msg("history file does not exist, starting fresh")
			return History{}, nil
		}
		return nil, fmt.Errorf("failed to read history file %s: %v: %w", s.path, err, domain.ErrCorruptState)
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("history file %s is not valid JSON: %v: %w", s.path, err, domain.ErrCorruptState)
	}
	if h == nil {
		h = History{}
	}
	return h, nil
}

// Save writes the history atomically: marshal to a temp file, fsync, then
// rename over the real path so a crash never leaves a partial write.
func (s *Store) Save(h History) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tmpPath := s.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync history file: %w", err)
	}
	if err = file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close history file: %w", err)
	}

	return os.Rename(tmpPath, s.path)
}
