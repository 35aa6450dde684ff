package insights

import (
	"github.com/gofiber/fiber/v2"
)

type InsightsPlugin struct {
	service *AnalyticsService
}

func New(service *AnalyticsService) *InsightsPlugin {
	return &InsightsPlugin{service: service}
}

func (p *InsightsPlugin) ID() string { return "insights" }

// Models is empty; analytics reads mood and journal tables only.
func (p *InsightsPlugin) Models() []interface{} { return nil }

func (p *InsightsPlugin) RegisterRoutes(router fiber.Router) {
	handler := NewAnalyticsHandler(p.service)

	router.Get("/analytics/trends", handler.Trends)
	router.Get("/analytics/streaks", handler.Streaks)
	router.Get("/analytics/insights", handler.Insights)
}
