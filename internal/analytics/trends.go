package analytics

import (
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/timeutil"
)

type TrendPeriod string

const (
	TrendDaily   TrendPeriod = "daily"
	TrendWeekly  TrendPeriod = "weekly"
	TrendMonthly TrendPeriod = "monthly"
)

// ParseTrendPeriod maps a query value to a period; anything unknown is weekly.
func ParseTrendPeriod(s string) TrendPeriod {
	switch TrendPeriod(s) {
	case TrendDaily, TrendMonthly:
		return TrendPeriod(s)
	default:
		return TrendWeekly
	}
}

// WindowStart is the first instant included in the period's lookback:
// 30 days, 12 weeks or 12 months back, snapped to the unit boundary.
func (p TrendPeriod) WindowStart(now time.Time, loc *time.Location) time.Time {
	switch p {
	case TrendDaily:
		return timeutil.StartOfDay(now.In(loc).AddDate(0, 0, -30), loc)
	case TrendMonthly:
		return timeutil.StartOfMonth(now.In(loc).AddDate(0, -12, 0), loc)
	default:
		return timeutil.StartOfWeek(now.In(loc).AddDate(0, 0, -12*7), loc)
	}
}

// Key returns the bucket key for t.
func (p TrendPeriod) Key(t time.Time, loc *time.Location) string {
	switch p {
	case TrendDaily:
		return timeutil.DayKey(t, loc)
	case TrendMonthly:
		return timeutil.MonthKey(t, loc)
	default:
		return timeutil.WeekKey(t, loc)
	}
}

type TrendBucket struct {
	Period           string         `json:"period"`
	AverageScore     float64        `json:"averageScore"`
	EntryCount       int            `json:"entryCount"`
	MoodDistribution map[string]int `json:"moodDistribution"`
}

// BuildTrends groups points into period buckets. Only non-empty buckets are
// returned, ordered by key ascending; the key formats sort chronologically.
func BuildTrends(points []MoodPoint, period TrendPeriod, loc *time.Location) []TrendBucket {
	groups := make(map[string][]MoodPoint)
	for _, p := range points {
		key := period.Key(p.Date, loc)
		groups[key] = append(groups[key], p)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]TrendBucket, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		buckets = append(buckets, TrendBucket{
			Period:           k,
			AverageScore:     Round2(meanScore(g)),
			EntryCount:       len(g),
			MoodDistribution: distribution(g),
		})
	}
	return buckets
}
