package journals

import (
	"github.com/gofiber/fiber/v2"
)

type JournalsPlugin struct {
	service *JournalService
}

func New(service *JournalService) *JournalsPlugin {
	return &JournalsPlugin{service: service}
}

func (p *JournalsPlugin) ID() string { return "journals" }

func (p *JournalsPlugin) Models() []interface{} {
	return []interface{}{
		&JournalEntry{},
	}
}

func (p *JournalsPlugin) RegisterRoutes(router fiber.Router) {
	handler := NewJournalHandler(p.service)

	router.Post("/journals", handler.Submit)
	router.Get("/journals/daily", handler.Daily)
	router.Get("/journals/history", handler.History)
	router.Get("/journals/sentiment/:id", handler.Sentiment)
}
