package external

import (
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/quotes"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/sentiment"
	"github.com/gofiber/fiber/v2"
)

type ExternalPlugin struct {
	analyzer *sentiment.Analyzer
	quotes   *quotes.Service
}

func New(analyzer *sentiment.Analyzer, q *quotes.Service) *ExternalPlugin {
	return &ExternalPlugin{analyzer: analyzer, quotes: q}
}

func (p *ExternalPlugin) ID() string { return "external" }

func (p *ExternalPlugin) Models() []interface{} { return nil }

func (p *ExternalPlugin) RegisterRoutes(router fiber.Router) {
	handler := NewExternalHandler(p.analyzer, p.quotes)

	router.Post("/sentiment/analyze", handler.Analyze)
	router.Get("/quotes/mood", handler.Quotes)
}
