package insights

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service *AnalyticsService
}

func NewAnalyticsHandler(service *AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) Trends(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	resp, err := h.service.Trends(c.UserContext(), userID, analytics.ParseTrendPeriod(c.Query("period")))
	if err != nil {
		slog.Error("mood trends failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to compute mood trends"))
	}
	return c.JSON(dto.OK(resp))
}

func (h *AnalyticsHandler) Streaks(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	summary, err := h.service.Streaks(c.UserContext(), userID)
	if err != nil {
		slog.Error("mood streaks failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to compute streaks"))
	}
	return c.JSON(dto.OK(summary))
}

func (h *AnalyticsHandler) Insights(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	report, err := h.service.Insights(c.UserContext(), userID, analytics.ParseInsightWindow(c.Query("period")))
	if err != nil {
		slog.Error("insight generation failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to generate insights"))
	}
	return c.JSON(dto.OK(report))
}
