package stats

import (
	"strings"
	"time"
)

// Layouts used when matching the free-text query against a record's
// timestamp. These mirror the strings shown in the history view
// ("June 3, 2025", "4:05:09 PM").
const (
	DateLayout = "January 2, 2006"
	TimeLayout = "3:04:05 PM"
)

// FilterSpec narrows a receipt set for history browsing. Every field
// is optional; the effective filter is the conjunction of the
// supplied ones.
type FilterSpec struct {
	// Query is matched case-insensitively as a substring of the
	// customer name, the formatted date, or the formatted time.
	Query string

	// StartDate bounds records from the start of the given day,
	// EndDate through the end of its day, both inclusive.
	StartDate *time.Time
	EndDate   *time.Time

	// MinAmount and MaxAmount bound the record total, inclusive.
	MinAmount *float64
	MaxAmount *float64
}

// IsZero reports whether no criteria are supplied.
func (s FilterSpec) IsZero() bool {
	return strings.TrimSpace(s.Query) == "" &&
		s.StartDate == nil && s.EndDate == nil &&
		s.MinAmount == nil && s.MaxAmount == nil
}

// Apply returns the records matching every supplied criterion,
// preserving their input order. An empty spec returns a copy of the
// whole set.
func Apply[T any](records []T, spec FilterSpec, acc Accessors[T]) []T {
	query := strings.ToLower(strings.TrimSpace(spec.Query))

	out := make([]T, 0, len(records))
	for _, r := range records {
		if matches(r, query, spec, acc) {
			out = append(out, r)
		}
	}
	return out
}

func matches[T any](r T, query string, spec FilterSpec, acc Accessors[T]) bool {
	if query != "" {
		hit := strings.Contains(strings.ToLower(acc.CustomerName(r)), query)
		if !hit {
			if ts, ok := acc.CreatedAt(r); ok {
				hit = strings.Contains(strings.ToLower(ts.Format(DateLayout)), query) ||
					strings.Contains(strings.ToLower(ts.Format(TimeLayout)), query)
			}
		}
		if !hit {
			return false
		}
	}

	if spec.StartDate != nil || spec.EndDate != nil {
		ts, ok := acc.CreatedAt(r)
		if !ok {
			return false
		}
		if spec.StartDate != nil && ts.Before(startOfDay(*spec.StartDate)) {
			return false
		}
		if spec.EndDate != nil && ts.After(endOfDay(*spec.EndDate)) {
			return false
		}
	}

	if spec.MinAmount != nil || spec.MaxAmount != nil {
		total := acc.Total(r)
		if spec.MinAmount != nil && total < *spec.MinAmount {
			return false
		}
		if spec.MaxAmount != nil && total > *spec.MaxAmount {
			return false
		}
	}

	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
