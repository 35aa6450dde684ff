package moods

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MoodType string

const (
	VerySad   MoodType = "very_sad"
	Sad       MoodType = "sad"
	Neutral   MoodType = "neutral"
	Happy     MoodType = "happy"
	VeryHappy MoodType = "very_happy"
)

var moodScores = map[MoodType]int{
	VerySad:   1,
	Sad:       2,
	Neutral:   3,
	Happy:     4,
	VeryHappy: 5,
}

func (t MoodType) Valid() bool {
	_, ok := moodScores[t]
	return ok
}

// ScoreFor maps a mood type to its 1-5 score. Unknown types score 3.
func ScoreFor(t MoodType) int {
	if s, ok := moodScores[t]; ok {
		return s
	}
	return 3
}

// MoodEntry is one user's mood for one calendar day. Day holds the
// YYYY-MM-DD key in the service timezone and is unique per user.
type MoodEntry struct {
	ID        uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_mood_user_day;index:idx_mood_user_date,priority:1" json:"user"`
	Day       string                      `gorm:"size:10;not null;uniqueIndex:idx_mood_user_day" json:"-"`
	MoodType  MoodType                    `gorm:"size:20;not null" json:"moodType"`
	MoodScore int                         `gorm:"not null" json:"moodScore"`
	Notes     string                      `gorm:"size:500" json:"notes"`
	Tags      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Date      time.Time                   `gorm:"not null;index:idx_mood_user_date,priority:2,sort:desc" json:"date"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

// SetMoodType keeps MoodScore consistent with the type.
func (m *MoodEntry) SetMoodType(t MoodType) {
	m.MoodType = t
	m.MoodScore = ScoreFor(t)
}

func (m *MoodEntry) BeforeSave(*gorm.DB) error {
	m.MoodScore = ScoreFor(m.MoodType)
	return nil
}

// --- DTOs ---

type SubmitMoodRequest struct {
	MoodType string   `json:"moodType"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`
}

type HistoryQuery struct {
	From  time.Time
	To    time.Time
	Page  int
	Limit int
}
