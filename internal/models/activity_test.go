package models

import (
	"testing"
	"time"
)

func day(offset int, tokens int64, messages, sessions int) DailyActivity {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return DailyActivity{
		Date:     base.AddDate(0, 0, offset),
		Tokens:   tokens,
		Messages: messages,
		Sessions: sessions,
	}
}

func TestNewWeekSummary(t *testing.T) {
	days := []DailyActivity{
		day(0, 100, 4, 1),
		day(1, 0, 0, 0),
		day(2, 500, 12, 2),
		day(3, 250, 6, 1),
		day(4, 0, 0, 0),
		day(5, 50, 2, 1),
		day(6, 100, 5, 1),
	}

	s := NewWeekSummary(days)

	if s.MaxTokens != 500 {
		t.Errorf("MaxTokens = %d, want 500", s.MaxTokens)
	}
	if s.TotalTokens != 1000 {
		t.Errorf("TotalTokens = %d, want 1000", s.TotalTokens)
	}
	if s.ActiveDays != 5 {
		t.Errorf("ActiveDays = %d, want 5", s.ActiveDays)
	}
	if s.AvgTokensDay != 143 {
		t.Errorf("AvgTokensDay = %d, want 143", s.AvgTokensDay)
	}
	if s.AvgMessagesDay != 4 {
		t.Errorf("AvgMessagesDay = %d, want 4", s.AvgMessagesDay)
	}
}

func TestNewWeekSummary_Empty(t *testing.T) {
	s := NewWeekSummary(nil)
	if s.MaxTokens != 1 {
		t.Errorf("MaxTokens = %d, want floor of 1", s.MaxTokens)
	}
	if s.AvgTokensDay != 0 || s.ActiveDays != 0 {
		t.Error("empty summary should be all zeros")
	}
}

func TestNewWeekSummary_AllZeroDays(t *testing.T) {
	days := []DailyActivity{day(0, 0, 0, 0), day(1, 0, 0, 0)}
	s := NewWeekSummary(days)
	if s.MaxTokens != 1 {
		t.Errorf("MaxTokens = %d, want 1", s.MaxTokens)
	}
	if s.Ratio(days[0]) != 0 {
		t.Errorf("Ratio of zero day = %f, want 0", s.Ratio(days[0]))
	}
}

func TestWeekSummary_RatioBounds(t *testing.T) {
	days := []DailyActivity{
		day(0, 1, 1, 1),
		day(1, 999999, 1, 1),
		day(2, 0, 0, 0),
	}
	s := NewWeekSummary(days)

	for _, d := range days {
		r := s.Ratio(d)
		if r < 0 || r > 1 {
			t.Errorf("Ratio(%d tokens) = %f, out of [0,1]", d.Tokens, r)
		}
	}
	if s.Ratio(days[1]) != 1 {
		t.Errorf("busiest day ratio = %f, want 1", s.Ratio(days[1]))
	}
}

func TestWeekSummary_AvgWithinRoundingTolerance(t *testing.T) {
	cases := [][]int64{
		{1, 2, 3, 4, 5, 6, 7},
		{0, 0, 0, 0, 0, 0, 1},
		{13, 17, 19, 23, 29, 31, 37},
	}

	for _, tokens := range cases {
		var days []DailyActivity
		var total int64
		for i, tok := range tokens {
			days = append(days, day(i, tok, 0, 0))
			total += tok
		}
		s := NewWeekSummary(days)

		diff := s.AvgTokensDay*int64(len(days)) - total
		if diff < 0 {
			diff = -diff
		}
		if diff > int64(len(days)-1) {
			t.Errorf("avg*days - total = %d for %v, want within %d", diff, tokens, len(days)-1)
		}
	}
}

func TestWeekSummary_BarEighths(t *testing.T) {
	days := []DailyActivity{
		day(0, 1000, 1, 1),
		day(1, 1, 1, 1),
		day(2, 0, 0, 0),
	}
	s := NewWeekSummary(days)

	const rows = 4

	// Busiest day fills the column.
	if got := s.BarEighths(days[0], rows); got != rows*8 {
		t.Errorf("max day eighths = %d, want %d", got, rows*8)
	}

	// A tiny but nonzero day never drops below the minimum visible height.
	if got := s.BarEighths(days[1], rows); got < minActiveEighths {
		t.Errorf("active day eighths = %d, below minimum %d", got, minActiveEighths)
	}

	// A zero day gets the smaller fixed stub.
	if got := s.BarEighths(days[2], rows); got != zeroDayEighths {
		t.Errorf("zero day eighths = %d, want %d", got, zeroDayEighths)
	}

	// Stub is strictly smaller than the active minimum.
	if zeroDayEighths >= minActiveEighths {
		t.Error("zero-day stub must be smaller than the active minimum")
	}
}

func TestTerminalRecord_IsError(t *testing.T) {
	ok := TerminalRecord{Command: "ls", Stream: StreamStdout, ExitCode: 0}
	if ok.IsError() {
		t.Error("exit 0 stdout should not be an error")
	}

	failed := TerminalRecord{Command: "make", Stream: StreamStdout, ExitCode: 2}
	if !failed.IsError() {
		t.Error("nonzero exit should be an error")
	}

	stderr := TerminalRecord{Command: "gcc", Stream: StreamStderr, ExitCode: 0}
	if !stderr.IsError() {
		t.Error("stderr capture should be an error")
	}
}
