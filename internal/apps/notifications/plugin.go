package notifications

import (
	"github.com/gofiber/fiber/v2"
)

type NotificationsPlugin struct {
	service *NotificationService
}

func New(service *NotificationService) *NotificationsPlugin {
	return &NotificationsPlugin{service: service}
}

func (p *NotificationsPlugin) ID() string { return "notifications" }

func (p *NotificationsPlugin) Models() []interface{} {
	return []interface{}{
		&Notification{},
	}
}

func (p *NotificationsPlugin) RegisterRoutes(router fiber.Router) {
	handler := NewNotificationHandler(p.service)

	router.Post("/notifications/reminder", handler.SetReminder)
	router.Get("/notifications/reminder", handler.GetReminder)
	router.Delete("/notifications/reminder", handler.RemoveReminder)
	router.Get("/notifications", handler.List)
	router.Put("/notifications/:id/read", handler.MarkRead)
}
