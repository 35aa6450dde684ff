// Package analytics holds the pure computations behind the trend, streak,
// insight and average endpoints. Nothing here touches storage; callers fetch
// the rows and hand over plain points.
package analytics

import (
	"math"
	"time"
)

// PositiveScore is the lowest mood score that counts toward a positive streak.
const PositiveScore = 4

// MoodPoint is the slice of a mood entry the analytics need.
type MoodPoint struct {
	Date  time.Time
	Type  string
	Score int
}

// Round2 rounds to two decimals, halves toward positive infinity.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func meanScore(points []MoodPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	total := 0
	for _, p := range points {
		total += p.Score
	}
	return float64(total) / float64(len(points))
}

func distribution(points []MoodPoint) map[string]int {
	dist := make(map[string]int)
	for _, p := range points {
		dist[p.Type]++
	}
	return dist
}
