package analytics

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/timeutil"
)

var averageWindows = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
	"1y":  365,
}

// AverageWindow resolves the average endpoint's period to [start, end]:
// midnight of the day n days back through the end of today. Unknown periods
// use 7 days.
func AverageWindow(period string, now time.Time, loc *time.Location) (time.Time, time.Time) {
	days, ok := averageWindows[period]
	if !ok {
		days = 7
	}
	start := timeutil.StartOfDay(now.In(loc).AddDate(0, 0, -days), loc)
	return start, timeutil.EndOfDay(now, loc)
}

type MoodSummary struct {
	AverageScore     float64        `json:"averageScore"`
	TotalEntries     int            `json:"totalEntries"`
	MoodDistribution map[string]int `json:"moodDistribution"`
}

// Summarize averages the points. An empty input yields zeros and an empty
// distribution.
func Summarize(points []MoodPoint) MoodSummary {
	return MoodSummary{
		AverageScore:     Round2(meanScore(points)),
		TotalEntries:     len(points),
		MoodDistribution: distribution(points),
	}
}
