package domain

import (
	"fmt"
	"time"
)

// ActivityVerdict is the result of classifying a repository against the
// lifespan window. Derived per run, never stored.
type ActivityVerdict string

const (
	VerdictActive   ActivityVerdict = "active"
	VerdictInactive ActivityVerdict = "inactive"
)

// DefaultLifespanWeeks is used when the caller supplies no lifespan.
const DefaultLifespanWeeks = 36

// Cutoff converts a lifespan in weeks into the absolute timestamp before
// which a repository counts as inactive. A zero or negative lifespan is
// rejected as invalid input.
func Cutoff(now time.Time, lifespanWeeks int) (time.Time, error) {
	if lifespanWeeks <= 0 {
		return time.Time{}, fmt.Errorf("lifespan must be a positive number of weeks, got %d: %w", lifespanWeeks, ErrInvalidInput)
	}
	return now.Add(-time.Duration(lifespanWeeks) * 7 * 24 * time.Hour), nil
}

// Classify decides whether a repository last pushed at lastPush is active
// within the lifespan window ending at now. A push exactly on the cutoff
// counts as active.
func Classify(lastPush time.Time, lifespanWeeks int, now time.Time) (ActivityVerdict, error) {
	cutoff, err := Cutoff(now, lifespanWeeks)
	if err != nil {
		return "", err
	}
	if !lastPush.Before(cutoff) {
		return VerdictActive, nil
	}
	return VerdictInactive, nil
}
