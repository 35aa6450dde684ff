package moods

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the mood persistence the services depend on.
type Repository interface {
	// Upsert inserts entry or, when the user already has one for entry.Day,
	// overwrites its mood fields and date. entry is refreshed from the stored
	// row; created reports whether a new row was written.
	Upsert(ctx context.Context, entry *MoodEntry) (created bool, err error)
	FindByDay(ctx context.Context, userID uuid.UUID, day string) (*MoodEntry, error)
	// History returns a newest-first page and the total matching count.
	History(ctx context.Context, userID uuid.UUID, q HistoryQuery) ([]MoodEntry, int64, error)
	// Range returns entries with from <= date <= to, oldest first. A zero
	// bound is open.
	Range(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]MoodEntry, error)
	// All returns the full history, newest first.
	All(ctx context.Context, userID uuid.UUID) ([]MoodEntry, error)
}

var upsertColumns = []string{"mood_type", "mood_score", "notes", "tags", "date", "updated_at"}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Upsert(ctx context.Context, entry *MoodEntry) (bool, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	proposed := entry.ID

	err := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		},
		clause.Returning{},
	).Create(entry).Error
	if err != nil {
		return false, err
	}
	return entry.ID == proposed, nil
}

func (r *GormRepository) FindByDay(ctx context.Context, userID uuid.UUID, day string) (*MoodEntry, error) {
	var entry MoodEntry
	err := r.db.WithContext(ctx).Scopes(identity.ForUser(userID)).Where("day = ?", day).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMoodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormRepository) History(ctx context.Context, userID uuid.UUID, q HistoryQuery) ([]MoodEntry, int64, error) {
	base := r.db.WithContext(ctx).Model(&MoodEntry{}).
		Scopes(identity.ForUser(userID), dateBetween(q.From, q.To)).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []MoodEntry
	err := base.Order("date DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *GormRepository) Range(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]MoodEntry, error) {
	var entries []MoodEntry
	err := r.db.WithContext(ctx).
		Scopes(identity.ForUser(userID), dateBetween(from, to)).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *GormRepository) All(ctx context.Context, userID uuid.UUID) ([]MoodEntry, error) {
	var entries []MoodEntry
	err := r.db.WithContext(ctx).
		Scopes(identity.ForUser(userID)).
		Select("id", "user_id", "day", "mood_type", "mood_score", "date").
		Order("date DESC").
		Find(&entries).Error
	return entries, err
}

func dateBetween(from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !from.IsZero() {
			db = db.Where("date >= ?", from)
		}
		if !to.IsZero() {
			db = db.Where("date <= ?", to)
		}
		return db
	}
}
