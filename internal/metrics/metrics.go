// Package metrics derives dashboard statistics from a store snapshot.
// Every function is pure; callers recompute on each read.
package metrics

import (
	"math"
	"strings"
	"time"

	"company-portal/internal/domain"
	"company-portal/internal/store"
)

// DefaultDeadlineWindowDays is how far ahead a due date still counts as upcoming.
const DefaultDeadlineWindowDays = 7

const (
	requiredFieldWeight = 10
	optionalFieldWeight = 5
)

// DerivedStats is recomputed from a snapshot, never stored.
type DerivedStats struct {
	ProfileCompletionPercent int
	TasksTotal               int
	TasksPending             int
	TasksCompleted           int
	CompletionRate           int
	UpcomingDeadlines        int
}

// Options tunes Compute.
type Options struct {
	DeadlineWindowDays int
}

// Compute is the single entry point for derived statistics so that every
// view reports the same numbers.
func Compute(snap store.Snapshot, now time.Time) DerivedStats {
	return ComputeWithOptions(snap, now, Options{DeadlineWindowDays: DefaultDeadlineWindowDays})
}

// ComputeWithOptions is Compute with a configurable deadline window.
func ComputeWithOptions(snap store.Snapshot, now time.Time, opts Options) DerivedStats {
	today := domain.DateOf(now)
	return DerivedStats{
		ProfileCompletionPercent: ProfileCompletion(snap.CompanyProfile),
		TasksTotal:               len(snap.Tasks),
		TasksPending:             CountPending(snap.Tasks),
		TasksCompleted:           CountCompleted(snap.Tasks),
		CompletionRate:           CompletionRate(snap.Tasks),
		UpcomingDeadlines:        UpcomingDeadlinesWithin(snap.Tasks, today, opts.DeadlineWindowDays),
	}
}

// ProfileCompletion scores a profile out of 100. Each required field that is
// non-blank adds 10 and each optional field adds 5, so a fully filled profile
// scores 85. The result is clamped to [0, 100]; nil scores 0.
func ProfileCompletion(profile *domain.CompanyProfile) int {
	if profile == nil {
		return 0
	}

	required := []string{
		profile.CompanyName,
		profile.Address,
		profile.City,
		profile.State,
		profile.Country,
		profile.PostalCode,
		profile.Industry,
	}
	optional := []string{
		profile.Description,
		profile.LogoURL,
		profile.Website,
	}

	score := 0
	for _, v := range required {
		if filled(v) {
			score += requiredFieldWeight
		}
	}
	for _, v := range optional {
		if filled(v) {
			score += optionalFieldWeight
		}
	}

	return clamp(score, 0, 100)
}

// MissingRequiredFields lists the required profile fields that are blank.
func MissingRequiredFields(profile *domain.CompanyProfile) []string {
	if profile == nil {
		profile = &domain.CompanyProfile{}
	}

	fields := []struct {
		name  string
		value string
	}{
		{"company_name", profile.CompanyName},
		{"address", profile.Address},
		{"city", profile.City},
		{"state", profile.State},
		{"country", profile.Country},
		{"postal_code", profile.PostalCode},
		{"industry", profile.Industry},
	}

	var missing []string
	for _, f := range fields {
		if !filled(f.value) {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// CountPending counts tasks that are not completed.
func CountPending(tasks []domain.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CountCompleted counts completed tasks.
func CountCompleted(tasks []domain.Task) int {
	return len(tasks) - CountPending(tasks)
}

// CompletionRate is round(100 * completed / total), or 0 without tasks.
func CompletionRate(tasks []domain.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(CountCompleted(tasks)) / float64(len(tasks))))
}

// UpcomingDeadlines counts pending tasks due between today and today+7,
// inclusive, at calendar-day granularity.
func UpcomingDeadlines(tasks []domain.Task, today time.Time) int {
	return UpcomingDeadlinesWithin(tasks, today, DefaultDeadlineWindowDays)
}

// UpcomingDeadlinesWithin is UpcomingDeadlines with a custom window.
func UpcomingDeadlinesWithin(tasks []domain.Task, today time.Time, windowDays int) int {
	n := 0
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil {
			continue
		}
		days := domain.DaysBetween(today, *t.DueDate)
		if days >= 0 && days <= windowDays {
			n++
		}
	}
	return n
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
