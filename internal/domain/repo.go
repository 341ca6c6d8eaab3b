// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// RepoSummary is an immutable snapshot of a repository as returned by the
// hosting platform, holding just the fields the reports need.
type RepoSummary struct {
	// FullName is the "owner/name" identifier.
	FullName string    `json:"full_name"`
	PushedAt time.Time `json:"pushed_at"`
	Archived bool      `json:"archived,omitempty"`
	// Parent is the upstream's full name when this repo is a fork.
	// It is a reference by identifier only.
	Parent string `json:"parent,omitempty"`
}

// SplitFullName splits an "owner/name" identifier into its two parts.
func SplitFullName(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("repository identifier must be owner/name, got %q: %w", fullName, ErrInvalidInput)
	}
	return owner, name, nil
}

// RepoSource selects which set of a user's repositories to list.
type RepoSource string

const (
	SourceOwned   RepoSource = "owned"
	SourceWatched RepoSource = "watched"
	SourceStarred RepoSource = "starred"
)

// ParseRepoSource validates a selector value before any network call is made.
func ParseRepoSource(s string) (RepoSource, error) {
	switch RepoSource(s) {
	case SourceOwned, SourceWatched, SourceStarred:
		return RepoSource(s), nil
	}
	return "", fmt.Errorf("repo source must be one of owned, watched, starred, got %q: %w", s, ErrInvalidInput)
}
