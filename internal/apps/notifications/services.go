package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/models"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/timeutil"
	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

var reminderPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

const (
	reminderTitle   = "Daily mood check-in"
	reminderMessage = "How are you feeling today? Take a moment to log your mood."
)

// ReminderStore reads and writes users' reminder times.
// services.GormUserStore satisfies it.
type ReminderStore interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetReminderTime(ctx context.Context, userID uuid.UUID, hhmm *string) error
	UsersWithReminderAt(ctx context.Context, hhmm string) ([]models.User, error)
}

// MoodChecker reports whether a user already logged today's mood.
type MoodChecker interface {
	HasLoggedToday(ctx context.Context, userID uuid.UUID) (bool, error)
}

type NotificationService struct {
	repo  Repository
	users ReminderStore
	moods MoodChecker
	loc   *time.Location
}

func NewNotificationService(repo Repository, users ReminderStore, moods MoodChecker, loc *time.Location) *NotificationService {
	return &NotificationService{repo: repo, users: users, moods: moods, loc: loc}
}

// NormalizeReminder validates a 24h "H:MM" or "HH:MM" value and returns it
// zero-padded.
func NormalizeReminder(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !reminderPattern.MatchString(value) {
		var verr dto.ValidationError
		verr.Add("time", "Time must be in HH:MM format")
		return "", &verr
	}
	h, m, _ := strings.Cut(value, ":")
	hour, _ := strconv.Atoi(h)
	return fmt.Sprintf("%02d:%s", hour, m), nil
}

func (s *NotificationService) SetReminder(ctx context.Context, userID uuid.UUID, value string) (*string, error) {
	hhmm, err := NormalizeReminder(value)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetReminderTime(ctx, userID, &hhmm); err != nil {
		return nil, err
	}
	return &hhmm, nil
}

func (s *NotificationService) Reminder(ctx context.Context, userID uuid.UUID) (*string, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ReminderTime, nil
}

func (s *NotificationService) RemoveReminder(ctx context.Context, userID uuid.UUID) error {
	return s.users.SetReminderTime(ctx, userID, nil)
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, q ListQuery) ([]Notification, int64, error) {
	return s.repo.List(ctx, userID, q)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*Notification, error) {
	return s.repo.MarkRead(ctx, userID, id)
}

// DispatchReminders creates today's reminder for every user whose reminder
// time is now's HH:MM and who has not logged a mood yet. Per-user failures are
// logged and skipped. It returns the number of notifications created.
func (s *NotificationService) DispatchReminders(ctx context.Context, now time.Time) (int, error) {
	local := now.In(s.loc)
	users, err := s.users.UsersWithReminderAt(ctx, local.Format("15:04"))
	if err != nil {
		return 0, fmt.Errorf("list reminder users: %w", err)
	}

	day := timeutil.DayKey(local, s.loc)
	sent := 0
	for _, u := range users {
		if s.moods != nil {
			logged, err := s.moods.HasLoggedToday(ctx, u.ID)
			if err != nil {
				slog.Warn("reminder mood check failed", "user_id", u.ID.String(), "error", err)
				continue
			}
			if logged {
				continue
			}
		}

		created, err := s.repo.Create(ctx, &Notification{
			ID:      uuid.New(),
			UserID:  u.ID,
			Type:    TypeReminder,
			Day:     &day,
			Title:   reminderTitle,
			Message: reminderMessage,
		})
		if err != nil {
			slog.Warn("reminder create failed", "user_id", u.ID.String(), "error", err)
			continue
		}
		if created {
			sent++
		}
	}
	return sent, nil
}
