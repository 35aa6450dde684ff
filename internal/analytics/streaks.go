package analytics

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/timeutil"
)

type StreakSummary struct {
	CurrentStreak         int `json:"currentStreak"`
	LongestStreak         int `json:"longestStreak"`
	CurrentPositiveStreak int `json:"currentPositiveStreak"`
	LongestPositiveStreak int `json:"longestPositiveStreak"`
	TotalEntries          int `json:"totalEntries"`
}

// ComputeStreaks scans a history sorted newest first.
//
// A day streak is a run of consecutive calendar days; a positive streak is a
// run of consecutive days scoring at least PositiveScore. The current counters
// describe the runs that reach today: if the newest entry is older than today
// both are zero. The current positive streak stops growing at the first
// non-positive day, even if the day streak carries on past it.
//
// Entries sharing a calendar day are counted once.
func ComputeStreaks(history []MoodPoint, now time.Time, loc *time.Location) StreakSummary {
	summary := StreakSummary{TotalEntries: len(history)}
	if len(history) == 0 {
		return summary
	}

	today := timeutil.StartOfDay(now, loc)

	var (
		run, posRun       int
		currentOpen       bool
		posOpen           bool
		prevDay           time.Time
		longest, longestP int
	)

	closeRun := func() {
		longest = max(longest, run)
		if currentOpen {
			summary.CurrentStreak = run
			currentOpen = false
		}
	}
	closePos := func() {
		longestP = max(longestP, posRun)
		if posOpen {
			summary.CurrentPositiveStreak = posRun
			posOpen = false
		}
		posRun = 0
	}

	for i, entry := range history {
		day := timeutil.StartOfDay(entry.Date, loc)
		positive := entry.Score >= PositiveScore

		switch {
		case i == 0:
			run = 1
			anchored := day.Equal(today)
			currentOpen = anchored
			posOpen = anchored && positive
		case day.Equal(prevDay):
			continue
		case day.Equal(prevDay.AddDate(0, 0, -1)):
			run++
		default:
			closeRun()
			closePos()
			run = 1
		}

		if positive {
			posRun++
		} else {
			closePos()
		}
		prevDay = day
	}

	closeRun()
	closePos()

	summary.LongestStreak = longest
	summary.LongestPositiveStreak = longestP
	return summary
}
