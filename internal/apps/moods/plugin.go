package moods

import (
	"github.com/gofiber/fiber/v2"
)

type MoodsPlugin struct {
	service *MoodService
}

func New(service *MoodService) *MoodsPlugin {
	return &MoodsPlugin{service: service}
}

func (p *MoodsPlugin) ID() string { return "moods" }

func (p *MoodsPlugin) Models() []interface{} {
	return []interface{}{
		&MoodEntry{},
	}
}

func (p *MoodsPlugin) RegisterRoutes(router fiber.Router) {
	handler := NewMoodHandler(p.service)

	router.Post("/moods", handler.Submit)
	router.Get("/moods/daily", handler.Daily)
	router.Get("/moods/history", handler.History)
	router.Get("/moods/average", handler.Average)
}
