package moods

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/timeutil"
	"github.com/gofiber/fiber/v2"
)

type MoodHandler struct {
	service *MoodService
}

func NewMoodHandler(service *MoodService) *MoodHandler {
	return &MoodHandler{service: service}
}

func (h *MoodHandler) Submit(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	var req SubmitMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	entry, created, err := h.service.Submit(c.UserContext(), userID, req)
	if err != nil {
		if ok, werr := dto.AsValidation(c, err); ok {
			return werr
		}
		slog.Error("mood submit failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to save mood entry"))
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Mood entry created successfully", entry))
	}
	return c.JSON(dto.OKMessage("Mood entry updated successfully", entry))
}

func (h *MoodHandler) Daily(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	entry, err := h.service.Today(c.UserContext(), userID)
	if err != nil {
		slog.Error("daily mood lookup failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to fetch mood entry"))
	}

	return c.JSON(dto.OK(entry))
}

func (h *MoodHandler) History(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	from, to, err := h.dateRange(c)
	if err != nil {
		_, werr := dto.AsValidation(c, err)
		return werr
	}
	page, limit := dto.PageQuery(c, 30)

	entries, total, err := h.service.History(c.UserContext(), userID, HistoryQuery{
		From: from, To: to, Page: page, Limit: limit,
	})
	if err != nil {
		slog.Error("mood history failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to fetch mood history"))
	}

	return c.JSON(dto.ListResponse{
		Success:    true,
		Count:      len(entries),
		Total:      total,
		Pagination: dto.NewPagination(page, limit, total),
		Data:       entries,
	})
}

func (h *MoodHandler) Average(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	from, to, err := h.dateRange(c)
	if err != nil {
		_, werr := dto.AsValidation(c, err)
		return werr
	}

	summary, err := h.service.Average(c.UserContext(), userID, c.Query("period", "7d"), from, to)
	if err != nil {
		slog.Error("mood average failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to compute average mood"))
	}

	return c.JSON(dto.OK(summary))
}

// dateRange reads optional startDate/endDate query values. A bare endDate
// date includes that whole day.
func (h *MoodHandler) dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	var (
		from, to time.Time
		verr     dto.ValidationError
		err      error
	)
	if v := c.Query("startDate"); v != "" {
		if from, err = timeutil.ParseDate(v, h.service.loc, false); err != nil {
			verr.Add("startDate", "startDate must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
		}
	}
	if v := c.Query("endDate"); v != "" {
		if to, err = timeutil.ParseDate(v, h.service.loc, true); err != nil {
			verr.Add("endDate", "endDate must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
		}
	}
	return from, to, verr.Err()
}
