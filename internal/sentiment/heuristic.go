// Package sentiment scores free text as positive, negative or neutral.
//
// Two keyword heuristics are provided and intentionally kept apart:
// Substring is used for ad-hoc text analysis and counts a token when it contains
// a lexicon word; Exact is used for journal entries and counts a token only when
// it equals a lexicon word. Their score denominators, confidence factors and
// label thresholds differ as well.
package sentiment

import (
	"math"
	"strings"
)

type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

func (l Label) Valid() bool {
	switch l {
	case LabelPositive, LabelNegative, LabelNeutral:
		return true
	}
	return false
}

// Result is a polarity score in [-1, 1] with a label and a confidence in [0, 1].
type Result struct {
	Score      float64 `json:"score"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Neutral is returned when no lexicon word is found.
var Neutral = Result{Score: 0, Label: LabelNeutral, Confidence: 0.5}

// Heuristic is a keyword-matching scorer. The zero value is not usable; use
// Substring or Exact.
type Heuristic struct {
	name             string
	positive         []string
	negative         []string
	substring        bool
	minDenomRatio    float64
	confidenceFactor float64
	threshold        float64
}

// Substring matches tokens containing a word of the extended lexicon.
var Substring = Heuristic{
	name:             "substring",
	positive:         extendedPositive[:],
	negative:         extendedNegative[:],
	substring:        true,
	minDenomRatio:    0.1,
	confidenceFactor: 3,
	threshold:        0.2,
}

// Exact matches tokens equal to a word of the journal lexicon.
var Exact = Heuristic{
	name:             "exact",
	positive:         journalPositive[:],
	negative:         journalNegative[:],
	substring:        false,
	confidenceFactor: 2,
	threshold:        0.1,
}

func (h Heuristic) Name() string { return h.name }

// Analyze scores text. Callers reject blank text before calling; blank input
// yields Neutral.
func (h Heuristic) Analyze(text string) Result {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return Neutral
	}

	var pos, neg int
	for _, tok := range tokens {
		if h.matches(tok, h.positive) {
			pos++
		}
		if h.matches(tok, h.negative) {
			neg++
		}
	}

	hits := pos + neg
	if hits == 0 {
		return Neutral
	}

	denom := float64(hits)
	if floor := float64(len(tokens)) * h.minDenomRatio; floor > denom {
		denom = floor
	}
	score := clamp(float64(pos-neg)/denom, -1, 1)
	confidence := math.Min(float64(hits)/float64(len(tokens))*h.confidenceFactor, 1)

	label := LabelNeutral
	switch {
	case score > h.threshold:
		label = LabelPositive
	case score < -h.threshold:
		label = LabelNegative
	}

	return Result{Score: score, Label: label, Confidence: round2(confidence)}
}

func (h Heuristic) matches(token string, words []string) bool {
	for _, w := range words {
		if h.substring {
			if strings.Contains(token, w) {
				return true
			}
		} else if token == w {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round2 rounds to two decimals, halves up.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
