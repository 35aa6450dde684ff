package notifications

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Create stores n unless an identical once-per-day notification exists.
	Create(ctx context.Context, n *Notification) (created bool, err error)
	// List returns a newest-first page and the total matching count.
	List(ctx context.Context, userID uuid.UUID, q ListQuery) ([]Notification, int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*Notification, error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, n *Notification) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(n)
	return tx.RowsAffected == 1, tx.Error
}

func (r *GormRepository) List(ctx context.Context, userID uuid.UUID, q ListQuery) ([]Notification, int64, error) {
	base := r.db.WithContext(ctx).Model(&Notification{}).Scopes(identity.ForUser(userID))
	if q.UnreadOnly {
		base = base.Where("is_read = ?", false)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Notification
	err := base.Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&list).Error
	return list, total, err
}

func (r *GormRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) (*Notification, error) {
	var updated []Notification
	tx := r.db.WithContext(ctx).Model(&updated).
		Clauses(clause.Returning{}).
		Scopes(identity.ForUser(userID)).
		Where("id = ?", id).
		Update("is_read", true)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(updated) == 0 {
		return nil, ErrNotificationNotFound
	}
	return &updated[0], nil
}
