package journals

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/sentiment"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the journal persistence the services depend on.
type Repository interface {
	// Upsert inserts entry or overwrites the user's entry for entry.Day.
	// On update content, privacy and date are always replaced, the title
	// only when non-empty and tags only when non-nil. The mood link and any
	// cached sentiment are kept. entry is refreshed from the stored row.
	Upsert(ctx context.Context, entry *JournalEntry) (created bool, err error)
	FindByDay(ctx context.Context, userID uuid.UUID, day string) (*JournalEntry, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*JournalEntry, error)
	History(ctx context.Context, userID uuid.UUID, q HistoryQuery) ([]JournalEntry, int64, error)
	// SaveSentiment stores r unless the entry already has a sentiment.
	// stored is false when another writer got there first.
	SaveSentiment(ctx context.Context, userID, id uuid.UUID, r sentiment.Result) (stored bool, err error)
	// SentimentScores returns the stored scores of entries dated on or after
	// from, oldest first. Entries never analyzed are skipped.
	SentimentScores(ctx context.Context, userID uuid.UUID, from time.Time) ([]float64, error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func withMood(db *gorm.DB) *gorm.DB {
	return db.Preload("Mood", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "mood_type", "mood_score")
	})
}

func (r *GormRepository) Upsert(ctx context.Context, entry *JournalEntry) (bool, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	proposed := entry.ID

	columns := []string{"content", "is_private", "date", "updated_at"}
	if entry.Title != "" {
		columns = append(columns, "title")
	}
	if entry.Tags != nil {
		columns = append(columns, "tags")
	}

	err := r.db.WithContext(ctx).Omit("Mood").Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns(columns),
		},
		clause.Returning{},
	).Create(entry).Error
	if err != nil {
		return false, err
	}
	return entry.ID == proposed, nil
}

func (r *GormRepository) FindByDay(ctx context.Context, userID uuid.UUID, day string) (*JournalEntry, error) {
	var entry JournalEntry
	err := r.db.WithContext(ctx).Scopes(identity.ForUser(userID), withMood).
		Where("day = ?", day).
		First(&entry).Error
	return found(&entry, err)
}

func (r *GormRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*JournalEntry, error) {
	var entry JournalEntry
	err := r.db.WithContext(ctx).Scopes(identity.ForUser(userID)).
		Where("id = ?", id).
		First(&entry).Error
	return found(&entry, err)
}

func found(entry *JournalEntry, err error) (*JournalEntry, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJournalNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *GormRepository) History(ctx context.Context, userID uuid.UUID, q HistoryQuery) ([]JournalEntry, int64, error) {
	base := r.db.WithContext(ctx).Model(&JournalEntry{}).
		Scopes(identity.ForUser(userID), dateBetween(q.From, q.To)).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []JournalEntry
	err := base.Scopes(withMood).
		Order("date DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *GormRepository) SaveSentiment(ctx context.Context, userID, id uuid.UUID, res sentiment.Result) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&JournalEntry{}).
		Scopes(identity.ForUser(userID)).
		Where("id = ? AND sentiment_score IS NULL", id).
		Updates(map[string]any{
			"sentiment_score":      res.Score,
			"sentiment_label":      string(res.Label),
			"sentiment_confidence": res.Confidence,
		})
	return tx.RowsAffected == 1, tx.Error
}

func (r *GormRepository) SentimentScores(ctx context.Context, userID uuid.UUID, from time.Time) ([]float64, error) {
	var scores []float64
	err := r.db.WithContext(ctx).Model(&JournalEntry{}).
		Scopes(identity.ForUser(userID), dateBetween(from, time.Time{})).
		Where("sentiment_score IS NOT NULL").
		Order("date ASC").
		Pluck("sentiment_score", &scores).Error
	return scores, err
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
