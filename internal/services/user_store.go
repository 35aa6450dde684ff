package services

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserStore persists users and their refresh tokens.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]any) error
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// ConsumeRefreshToken revokes an unexpired, unrevoked token in one
	// statement and returns it; anything else is ErrInvalidToken.
	ConsumeRefreshToken(ctx context.Context, hash string, now time.Time) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, userID uuid.UUID, hash string) error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (s *GormUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *GormUserStore) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return s.db.WithContext(ctx).Create(token).Error
}

func (s *GormUserStore) ConsumeRefreshToken(ctx context.Context, hash string, now time.Time) (*models.RefreshToken, error) {
	var tokens []models.RefreshToken
	result := s.db.WithContext(ctx).Model(&tokens).
		Clauses(clause.Returning{}).
		Where("token_hash = ? AND revoked = false AND expires_at > ?", hash, now).
		Update("revoked", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(tokens) == 0 {
		return nil, ErrInvalidToken
	}
	return &tokens[0], nil
}

func (s *GormUserStore) RevokeRefreshToken(ctx context.Context, userID uuid.UUID, hash string) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND token_hash = ?", userID, hash).
		Update("revoked", true).Error
}

// SetReminderTime stores or clears (nil) the daily reminder.
func (s *GormUserStore) SetReminderTime(ctx context.Context, userID uuid.UUID, hhmm *string) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("reminder_time", hhmm)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UsersWithReminderAt lists users whose reminder is set to hhmm.
func (s *GormUserStore) UsersWithReminderAt(ctx context.Context, hhmm string) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Where("reminder_time = ?", hhmm).Find(&users).Error
	return users, err
}
