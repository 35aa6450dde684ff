package quotes

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/cache"
)

type Source string

const (
	SourceExternal Source = "external_api"
	SourceDefault  Source = "default_collection"
)

const cacheTTL = time.Hour

// Service resolves quotes for a mood. Successful provider responses are cached
// per category when a cache is available.
type Service struct {
	provider Provider
	cache    cache.JSONCache
}

// NewService accepts a nil provider or cache.
func NewService(provider Provider, c cache.JSONCache) *Service {
	return &Service{provider: provider, cache: c}
}

func (s *Service) ForMood(ctx context.Context, mood, sentiment string) ([]Quote, Source) {
	if s.provider == nil || !s.provider.IsConfigured() {
		return Default(mood, sentiment), SourceDefault
	}

	category := Category(mood)
	key := "quotes:" + category

	if s.cache != nil {
		var cached []Quote
		found, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			slog.Warn("quotes cache read failed", "error", err, "key", key)
		} else if found && len(cached) > 0 {
			return cached, SourceExternal
		}
	}

	fetched, err := s.provider.Fetch(ctx, category)
	if err != nil {
		slog.Warn("external quotes API failed, using fallback", "provider", "quotes_api", "error", err)
		return Default(mood, sentiment), SourceDefault
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, fetched, cacheTTL); err != nil {
			slog.Warn("quotes cache write failed", "error", err, "key", key)
		}
	}
	return fetched, SourceExternal
}
