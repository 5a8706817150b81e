// Package stats computes dashboard statistics and history filtering
// over an in-memory receipt set. Everything here is a pure function:
// no I/O, no shared state, total over empty inputs. Callers load the
// record set and re-run these on every change.
package stats

import (
	"sort"
	"time"
)

// Period is the window length used for trend comparisons.
const Period = 24 * time.Hour

// RecentLimit is how many of the newest records Summarize keeps for
// the recent-activity panel.
const RecentLimit = 3

// Stat pairs a headline value with the period-over-period trend
// behind it.
type Stat struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

// Change returns the percentage change from previous to current.
// When previous is zero there is nothing to divide by: the result is
// 100 if current is non-zero and 0 if both are zero.
func Change(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// Accessors tells the engine how to read a record of type T.
// CreatedAt reports ok=false for records that carry no timestamp;
// such records sort after everything else and never match a
// date-bounded filter.
type Accessors[T any] struct {
	CustomerName func(T) string
	Total        func(T) float64
	CreatedAt    func(T) (time.Time, bool)
}

// Summary is the dashboard payload computed from a full receipt set.
type Summary[T any] struct {
	TotalSales    Stat `json:"total_sales"`
	TotalReceipts Stat `json:"total_receipts"`
	AverageOrder  Stat `json:"average_order"`
	Recent        []T  `json:"recent"`
}

// Summarize folds the full record set into dashboard statistics.
//
// Headline values (Current) are all-time aggregates. Trend
// percentages compare the last Period before now against the Period
// before that, so the displayed value and its trend deliberately read
// from different scopes. An average over an empty window is reported
// as 0, not as a guessed denominator.
func Summarize[T any](records []T, now time.Time, acc Accessors[T]) Summary[T] {
	dayAgo := now.Add(-Period)
	twoDaysAgo := now.Add(-2 * Period)

	var allSales float64
	var lastSales, lastCount float64
	var priorSales, priorCount float64

	for _, r := range records {
		total := acc.Total(r)
		allSales += total

		ts, ok := acc.CreatedAt(r)
		if !ok {
			continue
		}
		switch {
		case !ts.Before(dayAgo):
			lastSales += total
			lastCount++
		case !ts.Before(twoDaysAgo):
			priorSales += total
			priorCount++
		}
	}

	allCount := float64(len(records))
	var allAvg, lastAvg, priorAvg float64
	if allCount > 0 {
		allAvg = allSales / allCount
	}
	if lastCount > 0 {
		lastAvg = lastSales / lastCount
	}
	if priorCount > 0 {
		priorAvg = priorSales / priorCount
	}

	return Summary[T]{
		TotalSales: Stat{
			Current:  allSales,
			Previous: priorSales,
			Change:   Change(lastSales, priorSales),
		},
		TotalReceipts: Stat{
			Current:  allCount,
			Previous: priorCount,
			Change:   Change(lastCount, priorCount),
		},
		AverageOrder: Stat{
			Current:  allAvg,
			Previous: priorAvg,
			Change:   Change(lastAvg, priorAvg),
		},
		Recent: Recent(records, acc),
	}
}

// Recent returns up to RecentLimit records sorted newest first. The
// sort is stable, so records with equal timestamps keep their input
// order. The input slice is not modified.
func Recent[T any](records []T, acc Accessors[T]) []T {
	out := make([]T, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := acc.CreatedAt(out[i])
		tj, jok := acc.CreatedAt(out[j])
		if !iok {
			ti = time.Time{}
		}
		if !jok {
			tj = time.Time{}
		}
		return ti.After(tj)
	})

	if len(out) > RecentLimit {
		out = out[:RecentLimit:RecentLimit]
	}
	return out
}
