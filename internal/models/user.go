package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns moods, journals and notifications. ReminderTime is an "HH:MM"
// wall-clock time in the service timezone, nil when reminders are off.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"size:50;not null" json:"name"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	ReminderTime *string        `gorm:"size:5;index" json:"reminderTime"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
