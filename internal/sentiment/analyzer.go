package sentiment

import (
	"context"
	"log/slog"
)

type Source string

const (
	SourceExternal Source = "external_api"
	SourceBasic    Source = "basic_analysis"
)

// Analyzer prefers the remote provider and falls back to a local heuristic when
// the provider is absent, unconfigured or failing.
type Analyzer struct {
	provider Provider
	fallback Heuristic
}

func NewAnalyzer(provider Provider, fallback Heuristic) *Analyzer {
	return &Analyzer{provider: provider, fallback: fallback}
}

func (a *Analyzer) Analyze(ctx context.Context, text string) (Result, Source) {
	if a.provider != nil && a.provider.IsConfigured() {
		result, err := a.provider.Analyze(ctx, text)
		if err == nil && result != nil {
			return *result, SourceExternal
		}
		slog.Warn("external sentiment API failed, using fallback",
			"provider", "sentiment_api",
			"heuristic", a.fallback.Name(),
			"error", err,
		)
	}
	return a.fallback.Analyze(text), SourceBasic
}
