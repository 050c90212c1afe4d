// Package models defines data structures and domain types.
package models

import (
	"math"
	"time"
)

// DailyActivity is one day's aggregated usage counts. Records are produced by
// the store and are read-only for display.
type DailyActivity struct {
	Date     time.Time
	Tokens   int64
	Messages int
	Sessions int
}

// Bar height bounds, in eighth-block units.
const (
	// minActiveEighths is the smallest visible bar for a day with any tokens.
	minActiveEighths = 2
	// zeroDayEighths is the fixed stub height for a day with no tokens.
	zeroDayEighths = 1
)

// WeekSummary aggregates a week of daily records for the activity chart.
// Recomputed from the input on every render; holds no state of its own.
type WeekSummary struct {
	Days           []DailyActivity
	MaxTokens      int64
	TotalTokens    int64
	TotalMessages  int
	TotalSessions  int
	AvgTokensDay   int64
	AvgMessagesDay int
	ActiveDays     int
}

// NewWeekSummary computes the summary for a sequence of daily records.
func NewWeekSummary(days []DailyActivity) WeekSummary {
	s := WeekSummary{Days: days, MaxTokens: 1}

	for _, d := range days {
		if d.Tokens > s.MaxTokens {
			s.MaxTokens = d.Tokens
		}
		s.TotalTokens += d.Tokens
		s.TotalMessages += d.Messages
		s.TotalSessions += d.Sessions
		if d.Tokens > 0 {
			s.ActiveDays++
		}
	}

	if n := len(days); n > 0 {
		s.AvgTokensDay = int64(math.Round(float64(s.TotalTokens) / float64(n)))
		s.AvgMessagesDay = int(math.Round(float64(s.TotalMessages) / float64(n)))
	}

	return s
}

// Ratio returns the day's bar ratio in [0,1] relative to the busiest day.
func (s WeekSummary) Ratio(d DailyActivity) float64 {
	r := float64(d.Tokens) / float64(s.MaxTokens)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// BarEighths returns the bar height for a day in eighth-block units, for a
// column of the given height in rows. Days with activity never drop below the
// minimum visible height; idle days get a fixed stub.
func (s WeekSummary) BarEighths(d DailyActivity, rows int) int {
	if rows < 1 {
		rows = 1
	}
	total := rows * 8

	if d.Tokens == 0 {
		return zeroDayEighths
	}

	h := int(math.Round(s.Ratio(d) * float64(total)))
	if h < minActiveEighths {
		h = minActiveEighths
	}
	if h > total {
		h = total
	}
	return h
}
