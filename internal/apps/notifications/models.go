package notifications

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	TypeReminder NotificationType = "reminder"
	TypeInsight  NotificationType = "insight"
	TypeSystem   NotificationType = "system"
)

// Notification is an in-app message. Day is set for notifications that may be
// delivered at most once per calendar day and type.
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_notification_user_created,priority:1;uniqueIndex:idx_notification_once" json:"user"`
	Type      NotificationType `gorm:"size:20;not null;uniqueIndex:idx_notification_once" json:"type"`
	Day       *string          `gorm:"size:10;uniqueIndex:idx_notification_once" json:"-"`
	Title     string           `gorm:"size:100;not null" json:"title"`
	Message   string           `gorm:"size:500;not null" json:"message"`
	IsRead    bool             `gorm:"not null;index" json:"isRead"`
	CreatedAt time.Time        `gorm:"index:idx_notification_user_created,priority:2,sort:desc" json:"createdAt"`
}

// --- DTOs ---

type ReminderRequest struct {
	Time string `json:"time"`
}

type ReminderResponse struct {
	ReminderTime *string `json:"reminderTime"`
}

type ListQuery struct {
	UnreadOnly bool
	Page       int
	Limit      int
}
