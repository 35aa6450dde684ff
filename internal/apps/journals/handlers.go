package journals

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/timeutil"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JournalHandler struct {
	service *JournalService
}

func NewJournalHandler(service *JournalService) *JournalHandler {
	return &JournalHandler{service: service}
}

func (h *JournalHandler) Submit(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	var req SubmitJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	entry, created, err := h.service.Submit(c.UserContext(), userID, req)
	if err != nil {
		if ok, werr := dto.AsValidation(c, err); ok {
			return werr
		}
		slog.Error("journal submit failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to save journal entry"))
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Journal entry created successfully", entry.View()))
	}
	return c.JSON(dto.OKMessage("Journal entry updated successfully", entry.View()))
}

func (h *JournalHandler) Daily(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	entry, err := h.service.Today(c.UserContext(), userID)
	if err != nil {
		slog.Error("daily journal lookup failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to fetch journal entry"))
	}
	if entry == nil {
		return c.JSON(dto.OK(nil))
	}
	return c.JSON(dto.OK(entry.View()))
}

func (h *JournalHandler) History(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	from, to, err := h.dateRange(c)
	if err != nil {
		_, werr := dto.AsValidation(c, err)
		return werr
	}
	page, limit := dto.PageQuery(c, 20)

	entries, total, err := h.service.History(c.UserContext(), userID, HistoryQuery{
		From: from, To: to, Page: page, Limit: limit,
	})
	if err != nil {
		slog.Error("journal history failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to fetch journal history"))
	}

	views := make([]JournalView, len(entries))
	for i := range entries {
		views[i] = entries[i].View()
	}
	return c.JSON(dto.ListResponse{
		Success:    true,
		Count:      len(views),
		Total:      total,
		Pagination: dto.NewPagination(page, limit, total),
		Data:       views,
	})
}

func (h *JournalHandler) Sentiment(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid journal id"))
	}

	view, err := h.service.Sentiment(c.UserContext(), userID, id)
	if errors.Is(err, ErrJournalNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Journal entry not found"))
	}
	if err != nil {
		slog.Error("journal sentiment failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to analyze journal entry"))
	}
	return c.JSON(dto.OK(view))
}

func (h *JournalHandler) dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
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
