package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/timeutil"
)

type InsightType string

const (
	InsightPositive    InsightType = "positive"
	InsightConcern     InsightType = "concern"
	InsightImprovement InsightType = "improvement"
	InsightAchievement InsightType = "achievement"
)

const (
	highMoodMean       = 4.0
	lowMoodMean        = 2.0
	improvingSlope     = 0.1
	positiveJournaling = 0.3
	consistentRate     = 0.8
)

// InsightWindow is an insight lookback expressed in days.
type InsightWindow int

// ParseInsightWindow accepts 7d, 30d and 90d; anything else is 30 days.
func ParseInsightWindow(s string) InsightWindow {
	switch s {
	case "7d":
		return 7
	case "90d":
		return 90
	default:
		return 30
	}
}

func (w InsightWindow) Days() int { return int(w) }

func (w InsightWindow) String() string { return fmt.Sprintf("%d days", int(w)) }

// Start is midnight of the day w days before now.
func (w InsightWindow) Start(now time.Time, loc *time.Location) time.Time {
	return timeutil.StartOfDay(now.In(loc).AddDate(0, 0, -int(w)), loc)
}

type Insight struct {
	Type    InsightType `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

type InsightStats struct {
	MoodEntries      int     `json:"moodEntries"`
	JournalEntries   int     `json:"journalEntries"`
	AverageMood      float64 `json:"averageMood"`
	AverageSentiment float64 `json:"averageSentiment"`
}

type InsightReport struct {
	Period   string       `json:"period"`
	Insights []Insight    `json:"insights"`
	Stats    InsightStats `json:"stats"`
}

// GenerateInsights evaluates moods (ascending by date) and the sentiment scores
// of journals that have one. Each rule is checked on its own.
func GenerateInsights(moods []MoodPoint, sentiments []float64, window InsightWindow) InsightReport {
	if window <= 0 {
		window = 30
	}
	insights := make([]Insight, 0, 4)
	stats := InsightStats{
		MoodEntries:    len(moods),
		JournalEntries: len(sentiments),
	}

	if len(moods) > 0 {
		avg := meanScore(moods)
		stats.AverageMood = Round2(avg)

		if avg >= highMoodMean {
			insights = append(insights, Insight{
				Type:  InsightPositive,
				Title: "Great Mood Trend!",
				Message: fmt.Sprintf("Your average mood over the last %d days has been %.1f/5. Keep up the positive energy!",
					window.Days(), avg),
			})
		}
		if avg <= lowMoodMean {
			insights = append(insights, Insight{
				Type:    InsightConcern,
				Title:   "Mood Support",
				Message: "Your mood has been lower recently. Consider reaching out to friends or engaging in activities you enjoy.",
			})
		}

		scores := make([]float64, len(moods))
		for i, m := range moods {
			scores[i] = float64(m.Score)
		}
		if TrendSlope(scores) > improvingSlope {
			insights = append(insights, Insight{
				Type:    InsightImprovement,
				Title:   "Mood Improving",
				Message: "Your mood has been trending upward recently. Great progress!",
			})
		}
	}

	if len(sentiments) > 0 {
		total := 0.0
		for _, s := range sentiments {
			total += s
		}
		avg := total / float64(len(sentiments))
		stats.AverageSentiment = Round2(avg)

		if avg > positiveJournaling {
			insights = append(insights, Insight{
				Type:    InsightPositive,
				Title:   "Positive Journaling",
				Message: "Your journal entries have been quite positive lately. Writing seems to be helping your mindset!",
			})
		}
	}

	rate := float64(len(moods)) / float64(window.Days())
	if rate >= consistentRate {
		insights = append(insights, Insight{
			Type:  InsightAchievement,
			Title: "Consistent Tracking",
			Message: fmt.Sprintf("You've been very consistent with mood tracking - %d%% of days logged!",
				int(math.Floor(rate*100+0.5))),
		})
	}

	return InsightReport{
		Period:   window.String(),
		Insights: insights,
		Stats:    stats,
	}
}
