package notifications

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service *NotificationService
}

func NewNotificationHandler(service *NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) SetReminder(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	var req ReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	hhmm, err := h.service.SetReminder(c.UserContext(), userID, req.Time)
	if err != nil {
		return h.fail(c, err, "Failed to set reminder")
	}
	return c.JSON(dto.OKMessage("Daily reminder set successfully", ReminderResponse{ReminderTime: hhmm}))
}

func (h *NotificationHandler) GetReminder(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	hhmm, err := h.service.Reminder(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err, "Failed to fetch reminder")
	}
	return c.JSON(dto.OK(ReminderResponse{ReminderTime: hhmm}))
}

func (h *NotificationHandler) RemoveReminder(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	if err := h.service.RemoveReminder(c.UserContext(), userID); err != nil {
		return h.fail(c, err, "Failed to remove reminder")
	}
	return c.JSON(dto.OKMessage("Daily reminder removed successfully", ReminderResponse{}))
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	page, limit := dto.PageQuery(c, 20)
	list, total, err := h.service.List(c.UserContext(), userID, ListQuery{
		UnreadOnly: c.Query("unreadOnly") == "true",
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return h.fail(c, err, "Failed to fetch notifications")
	}
	if list == nil {
		list = []Notification{}
	}

	return c.JSON(dto.ListResponse{
		Success:    true,
		Count:      len(list),
		Total:      total,
		Pagination: dto.NewPagination(page, limit, total),
		Data:       list,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid notification id"))
	}

	n, err := h.service.MarkRead(c.UserContext(), userID, id)
	if err != nil {
		return h.fail(c, err, "Failed to update notification")
	}
	return c.JSON(dto.OKMessage("Notification marked as read", n))
}

func (h *NotificationHandler) fail(c *fiber.Ctx, err error, msg string) error {
	if ok, werr := dto.AsValidation(c, err); ok {
		return werr
	}
	switch {
	case errors.Is(err, ErrNotificationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Notification not found"))
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("User not found"))
	}
	slog.Error(msg, "error", err, "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(msg))
}
