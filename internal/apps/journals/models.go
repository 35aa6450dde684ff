package journals

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps/moods"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/sentiment"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JournalEntry is one user's journal for one calendar day. The sentiment
// columns stay NULL until the first sentiment request fills them.
type JournalEntry struct {
	ID                  uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID              uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_journal_user_day;index:idx_journal_user_date,priority:1"`
	Day                 string                      `gorm:"size:10;not null;uniqueIndex:idx_journal_user_day"`
	Title               string                      `gorm:"size:100"`
	Content             string                      `gorm:"type:text;not null"`
	SentimentScore      *float64                    `gorm:"column:sentiment_score"`
	SentimentLabel      *string                     `gorm:"column:sentiment_label;size:10;index"`
	SentimentConfidence *float64                    `gorm:"column:sentiment_confidence"`
	MoodID              *uuid.UUID                  `gorm:"type:uuid"`
	Mood                *moods.MoodEntry            `gorm:"foreignKey:MoodID;constraint:OnDelete:SET NULL"`
	Tags                datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	IsPrivate           bool                        `gorm:"not null"`
	Date                time.Time                   `gorm:"not null;index:idx_journal_user_date,priority:2,sort:desc"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Sentiment returns the cached analysis, or nil when none is stored.
func (j *JournalEntry) Sentiment() *sentiment.Result {
	if j.SentimentScore == nil || j.SentimentLabel == nil || j.SentimentConfidence == nil {
		return nil
	}
	return &sentiment.Result{
		Score:      *j.SentimentScore,
		Label:      sentiment.Label(*j.SentimentLabel),
		Confidence: *j.SentimentConfidence,
	}
}

func (j *JournalEntry) setSentiment(r sentiment.Result) {
	score, label, confidence := r.Score, string(r.Label), r.Confidence
	j.SentimentScore = &score
	j.SentimentLabel = &label
	j.SentimentConfidence = &confidence
}

// --- DTOs ---

type SubmitJournalRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	IsPrivate *bool    `json:"isPrivate"`
}

type HistoryQuery struct {
	From  time.Time
	To    time.Time
	Page  int
	Limit int
}

type MoodRef struct {
	ID        uuid.UUID      `json:"id"`
	MoodType  moods.MoodType `json:"moodType"`
	MoodScore int            `json:"moodScore"`
}

// JournalView is the wire form of an entry.
type JournalView struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Sentiment *sentiment.Result `json:"sentiment"`
	Mood      any               `json:"mood"`
	Tags      []string          `json:"tags"`
	IsPrivate bool              `json:"isPrivate"`
	Date      time.Time         `json:"date"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// View renders the entry. The mood is expanded when it was loaded and is the
// bare id otherwise.
func (j *JournalEntry) View() JournalView {
	v := JournalView{
		ID:        j.ID,
		UserID:    j.UserID,
		Title:     j.Title,
		Content:   j.Content,
		Sentiment: j.Sentiment(),
		Tags:      j.Tags,
		IsPrivate: j.IsPrivate,
		Date:      j.Date,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	switch {
	case j.Mood != nil:
		v.Mood = MoodRef{ID: j.Mood.ID, MoodType: j.Mood.MoodType, MoodScore: j.Mood.MoodScore}
	case j.MoodID != nil:
		v.Mood = *j.MoodID
	}
	return v
}

type SentimentView struct {
	Sentiment sentiment.Result `json:"sentiment"`
	Content   string           `json:"content"`
}
