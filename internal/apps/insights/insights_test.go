package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps/moods"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMoods struct {
	entries []moods.MoodEntry // oldest first
	err     error
}

func (f *fakeMoods) Range(_ context.Context, _ uuid.UUID, from, _ time.Time) ([]moods.MoodEntry, error) {
	var out []moods.MoodEntry
	for _, e := range f.entries {
		if !e.Date.Before(from) {
			out = append(out, e)
		}
	}
	return out, f.err
}

func (f *fakeMoods) All(context.Context, uuid.UUID) ([]moods.MoodEntry, error) {
	out := make([]moods.MoodEntry, len(f.entries))
	for i, e := range f.entries {
		out[len(out)-1-i] = e
	}
	return out, f.err
}

type fakeSentiments []float64

func (f fakeSentiments) SentimentScores(context.Context, uuid.UUID, time.Time) ([]float64, error) {
	return f, nil
}

var (
	user = uuid.MustParse("6f1c3a52-4444-4c1e-9c38-1f0c9b2d0a04")
	now  = time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)
)

// history logs one mood per day ending today, oldest first.
func history(types ...moods.MoodType) *fakeMoods {
	f := &fakeMoods{}
	for i, mt := range types {
		e := moods.MoodEntry{ID: uuid.New(), UserID: user, Date: now.AddDate(0, 0, i-len(types)+1)}
		e.SetMoodType(mt)
		f.entries = append(f.entries, e)
	}
	return f
}

func newService(m MoodSource, s SentimentSource) *AnalyticsService {
	svc := NewAnalyticsService(m, s, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

func TestStreaks(t *testing.T) {
	svc := newService(history(moods.Sad, moods.Happy, moods.VeryHappy, moods.Happy), nil)

	got, err := svc.Streaks(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentStreak)
	assert.Equal(t, 3, got.CurrentPositiveStreak)
	assert.Equal(t, 4, got.TotalEntries)
}

func TestTrendsUseWindow(t *testing.T) {
	f := history(moods.Happy, moods.Sad)
	old := moods.MoodEntry{UserID: user, Date: now.AddDate(0, 0, -45)}
	old.SetMoodType(moods.VerySad)
	f.entries = append([]moods.MoodEntry{old}, f.entries...)

	got, err := newService(f, nil).Trends(context.Background(), user, "daily")
	require.NoError(t, err)
	assert.EqualValues(t, "daily", got.Period)
	require.Len(t, got.Trends, 2)
	assert.Equal(t, "2026-10-13", got.Trends[0].Period)
	assert.Equal(t, 4.0, got.Trends[0].AverageScore)
}

func TestInsightsCombineSources(t *testing.T) {
	svc := newService(history(moods.VeryHappy, moods.VeryHappy, moods.Happy), fakeSentiments{0.5, 0.2})

	report, err := svc.Insights(context.Background(), user, 7)
	require.NoError(t, err)
	assert.Equal(t, "7 days", report.Period)
	assert.Equal(t, 3, report.Stats.MoodEntries)
	assert.Equal(t, 2, report.Stats.JournalEntries)
	assert.Equal(t, 0.35, report.Stats.AverageSentiment)
	assert.NotEmpty(t, report.Insights)
}

func TestInsightsWithoutJournals(t *testing.T) {
	report, err := newService(&fakeMoods{}, nil).Insights(context.Background(), user, 30)
	require.NoError(t, err)
	assert.Equal(t, "30 days", report.Period)
	assert.Empty(t, report.Insights)
	assert.Zero(t, report.Stats.AverageMood)
}

func TestAnalyticsRoutes(t *testing.T) {
	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals(identity.LocalsKey, &jwt.Token{Claims: jwt.MapClaims{"sub": user.String()}})
		return c.Next()
	})
	New(newService(history(moods.Happy), fakeSentiments{})).RegisterRoutes(api)

	for target, key := range map[string]string{
		"/api/analytics/trends?period=bogus": "period",
		"/api/analytics/streaks":             "currentStreak",
		"/api/analytics/insights?period=90d": "stats",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, target)
		assert.Contains(t, body["data"], key, target)
	}

	failing := fiber.New()
	failing.Use(func(c *fiber.Ctx) error {
		c.Locals(identity.LocalsKey, &jwt.Token{Claims: jwt.MapClaims{"sub": user.String()}})
		return c.Next()
	})
	New(newService(&fakeMoods{err: errors.New("db down")}, nil)).RegisterRoutes(failing)
	resp, err := failing.Test(httptest.NewRequest(http.MethodGet, "/analytics/streaks", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
