// Package insights serves mood trends, streaks and generated insights on top
// of the analytics package.
package insights

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps/moods"
	"github.com/google/uuid"
)

// MoodSource is the part of moods.Repository analytics reads.
type MoodSource interface {
	Range(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]moods.MoodEntry, error)
	All(ctx context.Context, userID uuid.UUID) ([]moods.MoodEntry, error)
}

// SentimentSource yields analyzed journal scores, oldest first.
type SentimentSource interface {
	SentimentScores(ctx context.Context, userID uuid.UUID, from time.Time) ([]float64, error)
}

type TrendsResponse struct {
	Period analytics.TrendPeriod   `json:"period"`
	Trends []analytics.TrendBucket `json:"trends"`
}

type AnalyticsService struct {
	moods      MoodSource
	sentiments SentimentSource
	loc        *time.Location
	now        func() time.Time
}

func NewAnalyticsService(m MoodSource, s SentimentSource, loc *time.Location) *AnalyticsService {
	return &AnalyticsService{moods: m, sentiments: s, loc: loc, now: time.Now}
}

func (s *AnalyticsService) Trends(ctx context.Context, userID uuid.UUID, period analytics.TrendPeriod) (TrendsResponse, error) {
	entries, err := s.moods.Range(ctx, userID, period.WindowStart(s.now(), s.loc), time.Time{})
	if err != nil {
		return TrendsResponse{}, err
	}
	return TrendsResponse{
		Period: period,
		Trends: analytics.BuildTrends(moods.Points(entries), period, s.loc),
	}, nil
}

func (s *AnalyticsService) Streaks(ctx context.Context, userID uuid.UUID) (analytics.StreakSummary, error) {
	entries, err := s.moods.All(ctx, userID)
	if err != nil {
		return analytics.StreakSummary{}, err
	}
	return analytics.ComputeStreaks(moods.Points(entries), s.now(), s.loc), nil
}

func (s *AnalyticsService) Insights(ctx context.Context, userID uuid.UUID, window analytics.InsightWindow) (analytics.InsightReport, error) {
	start := window.Start(s.now(), s.loc)

	entries, err := s.moods.Range(ctx, userID, start, time.Time{})
	if err != nil {
		return analytics.InsightReport{}, err
	}

	var scores []float64
	if s.sentiments != nil {
		if scores, err = s.sentiments.SentimentScores(ctx, userID, start); err != nil {
			return analytics.InsightReport{}, err
		}
	}
	return analytics.GenerateInsights(moods.Points(entries), scores, window), nil
}
