package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightTypes(r InsightReport) []InsightType {
	types := make([]InsightType, 0, len(r.Insights))
	for _, in := range r.Insights {
		types = append(types, in.Type)
	}
	return types
}

func ascending(scores ...int) []MoodPoint {
	points := make([]MoodPoint, len(scores))
	for i, s := range scores {
		points[i] = daysAgo(len(scores)-1-i, s)
	}
	return points
}

func TestTrendSlope(t *testing.T) {
	assert.Greater(t, TrendSlope([]float64{1, 2, 3, 4, 5}), 0.0)
	assert.InDelta(t, 1.0, TrendSlope([]float64{1, 2, 3, 4, 5}), 1e-9)
	assert.InDelta(t, -0.5, TrendSlope([]float64{4, 3.5, 3}), 1e-9)
	assert.Equal(t, 0.0, TrendSlope([]float64{3, 3, 3, 3}))
	assert.Equal(t, 0.0, TrendSlope([]float64{4}))
	assert.Equal(t, 0.0, TrendSlope(nil))
}

func TestGenerateInsightsHighMoodAndConsistency(t *testing.T) {
	scores := make([]int, 25)
	for i := range scores {
		scores[i] = 4 + (i+1)%2
	}

	report := GenerateInsights(ascending(scores...), nil, ParseInsightWindow("30d"))

	assert.Contains(t, insightTypes(report), InsightPositive)
	assert.Contains(t, insightTypes(report), InsightAchievement)
	assert.NotContains(t, insightTypes(report), InsightConcern)
	assert.Equal(t, "30 days", report.Period)
	assert.Equal(t, InsightStats{MoodEntries: 25, AverageMood: 4.52}, report.Stats)

	last := report.Insights[len(report.Insights)-1]
	assert.Equal(t, "You've been very consistent with mood tracking - 83% of days logged!", last.Message)
	assert.Equal(t, "Your average mood over the last 30 days has been 4.5/5. Keep up the positive energy!",
		report.Insights[0].Message)
}

func TestGenerateInsightsRules(t *testing.T) {
	tests := []struct {
		name       string
		moods      []MoodPoint
		sentiments []float64
		window     InsightWindow
		want       []InsightType
	}{
		{"no data", nil, nil, 30, []InsightType{}},
		{"low mood", ascending(1, 2, 1), nil, 7, []InsightType{InsightConcern}},
		{"rising mood", ascending(1, 2, 3, 4, 5), nil, 7, []InsightType{InsightImprovement}},
		{"positive journaling", nil, []float64{0.5, 0.4}, 7, []InsightType{InsightPositive}},
		{"lukewarm journaling", nil, []float64{0.3, 0.3}, 7, []InsightType{}},
		{
			"rules stack",
			ascending(2, 3, 4, 5, 5, 5, 5),
			[]float64{0.9},
			7,
			[]InsightType{InsightPositive, InsightImprovement, InsightPositive, InsightAchievement},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := GenerateInsights(tt.moods, tt.sentiments, tt.window)
			assert.Equal(t, tt.want, insightTypes(report))
		})
	}
}

func TestGenerateInsightsStats(t *testing.T) {
	report := GenerateInsights(ascending(3, 4, 4), []float64{0.5, 0.4}, 90)

	assert.Equal(t, InsightStats{
		MoodEntries:      3,
		JournalEntries:   2,
		AverageMood:      3.67,
		AverageSentiment: 0.45,
	}, report.Stats)
	assert.Equal(t, "90 days", report.Period)
}

func TestParseInsightWindow(t *testing.T) {
	assert.Equal(t, 7, ParseInsightWindow("7d").Days())
	assert.Equal(t, 90, ParseInsightWindow("90d").Days())
	assert.Equal(t, 30, ParseInsightWindow("30d").Days())
	assert.Equal(t, 30, ParseInsightWindow("1y").Days())
	assert.Equal(t, 30, ParseInsightWindow("").Days())

	start := ParseInsightWindow("7d").Start(now, utc)
	assert.Equal(t, time.Date(2026, 10, 7, 0, 0, 0, 0, utc), start)
}

func TestSummarize(t *testing.T) {
	empty := Summarize(nil)
	assert.Equal(t, 0.0, empty.AverageScore)
	assert.Equal(t, 0, empty.TotalEntries)
	assert.Empty(t, empty.MoodDistribution)
	require.NotNil(t, empty.MoodDistribution)

	got := Summarize([]MoodPoint{daysAgo(0, 4), daysAgo(1, 4), daysAgo(2, 1)})
	assert.Equal(t, 3.0, got.AverageScore)
	assert.Equal(t, map[string]int{"happy": 2, "very_sad": 1}, got.MoodDistribution)
}

func TestAverageWindow(t *testing.T) {
	start, end := AverageWindow("1y", now, utc)
	assert.Equal(t, time.Date(2025, 10, 14, 0, 0, 0, 0, utc), start)
	assert.Equal(t, time.Date(2026, 10, 14, 23, 59, 59, 999999999, utc), end)

	start, _ = AverageWindow("bogus", now, utc)
	assert.Equal(t, time.Date(2026, 10, 7, 0, 0, 0, 0, utc), start)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 4.52, Round2(113.0/25.0))
	assert.Equal(t, 3.67, Round2(11.0/3.0))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 0.0, Round2(0))
}
