package utils

import "time"

// IsStale reports whether at is older than maxAge relative to now
func IsStale(at, now time.Time, maxAge time.Duration) bool {
	if at.IsZero() {
		return true
	}
	return now.Sub(at) > maxAge
}

// Ago renders the elapsed time since at, rounded for display
func Ago(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Second:
		return "just now"
	case elapsed < time.Minute:
		return elapsed.Round(time.Second).String() + " ago"
	default:
		return elapsed.Round(time.Minute).String() + " ago"
	}
}
