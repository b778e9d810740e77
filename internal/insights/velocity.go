// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package insights

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/stellarlog/internal/models"
)

// Trend is the direction of a theme's reading rate.
type Trend string

const (
	TrendAccelerating Trend = "accelerating"
	TrendSteady       Trend = "steady"
	TrendSlowing      Trend = "slowing"
)

// daysPerMonth converts elapsed time into fractional months.
const daysPerMonth = 30.44

// Velocity is the reading rate of one tag over the trailing window.
type Velocity struct {
	Theme         string  `json:"theme"`
	BooksPerMonth float64 `json:"booksPerMonth"`
	Trend         Trend   `json:"trend"`
	Total         int     `json:"total"`
	InWindow      int     `json:"inWindow"`
}

// Velocity computes, for every tag carried by at least MinOccurrences works,
// how many of those works were added per month within the trailing window
// ending at now. The window is split at its temporal midpoint and the two
// halves are compared to classify the trend. Results are sorted by rate,
// fastest first, then by theme.
func (a *Analyzer) Velocity(records []models.CatalogRecord, now time.Time) []Velocity {
	works := normalizeWorks(records)
	cfg := a.cfg.Velocity

	var order []string
	stamps := make(map[string][]time.Time)
	for i := range works {
		for _, t := range works[i].allTags() {
			if _, ok := stamps[t]; !ok {
				order = append(order, t)
			}
			stamps[t] = append(stamps[t], works[i].createdAt)
		}
	}

	start := now.AddDate(0, -cfg.WindowMonths, 0)
	mid := start.Add(now.Sub(start) / 2)

	out := []Velocity{}
	for _, tag := range order {
		ts := stamps[tag]
		if len(ts) < cfg.MinOccurrences {
			continue
		}

		var inWindow, firstHalf, secondHalf int
		earliest := now
		for _, t := range ts {
			if t.Before(start) || t.After(now) {
				continue
			}
			inWindow++
			if t.Before(earliest) {
				earliest = t
			}
			if t.Before(mid) {
				firstHalf++
			} else {
				secondHalf++
			}
		}

		months := math.Max(now.Sub(earliest).Hours()/24/daysPerMonth, 1)
		out = append(out, Velocity{
			Theme:         tag,
			BooksPerMonth: math.Round(float64(inWindow)/months*100) / 100,
			Trend:         a.classifyTrend(firstHalf, secondHalf),
			Total:         len(ts),
			InWindow:      inWindow,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BooksPerMonth != out[j].BooksPerMonth {
			return out[i].BooksPerMonth > out[j].BooksPerMonth
		}
		return out[i].Theme < out[j].Theme
	})
	return out
}

// classifyTrend compares the second half of the window against the first.
func (a *Analyzer) classifyTrend(first, second int) Trend {
	cfg := a.cfg.Velocity
	switch {
	case float64(second) > float64(first)*cfg.AcceleratingFactor:
		return TrendAccelerating
	case float64(second) < float64(first)*cfg.SlowingFactor:
		return TrendSlowing
	default:
		return TrendSteady
	}
}
