package moods

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/timeutil"
	"github.com/google/uuid"
)

var ErrMoodNotFound = errors.New("mood entry not found")

const (
	maxNotesLen = 500
	maxTagLen   = 20
)

type MoodService struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewMoodService(repo Repository, loc *time.Location) *MoodService {
	return &MoodService{repo: repo, loc: loc, now: time.Now}
}

// Submit records today's mood, replacing an earlier submission from the same
// day. created is false when an existing entry was updated.
func (s *MoodService) Submit(ctx context.Context, userID uuid.UUID, req SubmitMoodRequest) (*MoodEntry, bool, error) {
	if err := validateSubmit(req); err != nil {
		return nil, false, err
	}

	now := s.now()
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	entry := &MoodEntry{
		ID:     uuid.New(),
		UserID: userID,
		Day:    timeutil.DayKey(now, s.loc),
		Notes:  req.Notes,
		Tags:   tags,
		Date:   now,
	}
	entry.SetMoodType(MoodType(req.MoodType))

	created, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return nil, false, err
	}
	return entry, created, nil
}

// Today returns nil without error when nothing was logged today.
func (s *MoodService) Today(ctx context.Context, userID uuid.UUID) (*MoodEntry, error) {
	entry, err := s.repo.FindByDay(ctx, userID, timeutil.DayKey(s.now(), s.loc))
	if errors.Is(err, ErrMoodNotFound) {
		return nil, nil
	}
	return entry, err
}

// HasLoggedToday reports whether the user has a mood entry for the current day.
func (s *MoodService) HasLoggedToday(ctx context.Context, userID uuid.UUID) (bool, error) {
	entry, err := s.Today(ctx, userID)
	return entry != nil, err
}

func (s *MoodService) History(ctx context.Context, userID uuid.UUID, q HistoryQuery) ([]MoodEntry, int64, error) {
	return s.repo.History(ctx, userID, q)
}

// Average summarizes [start, end] when both are set, otherwise the named
// period (7d, 30d, 90d, 1y) ending today.
func (s *MoodService) Average(ctx context.Context, userID uuid.UUID, period string, start, end time.Time) (analytics.MoodSummary, error) {
	if start.IsZero() || end.IsZero() {
		start, end = analytics.AverageWindow(period, s.now(), s.loc)
	}
	entries, err := s.repo.Range(ctx, userID, start, end)
	if err != nil {
		return analytics.MoodSummary{}, err
	}
	return analytics.Summarize(Points(entries)), nil
}

// Points converts entries for the analytics package, preserving order.
func Points(entries []MoodEntry) []analytics.MoodPoint {
	points := make([]analytics.MoodPoint, len(entries))
	for i, e := range entries {
		points[i] = analytics.MoodPoint{Date: e.Date, Type: string(e.MoodType), Score: e.MoodScore}
	}
	return points
}

func validateSubmit(req SubmitMoodRequest) error {
	var verr dto.ValidationError
	if !MoodType(req.MoodType).Valid() {
		verr.Add("moodType", "Invalid mood type")
	}
	if utf8.RuneCountInString(req.Notes) > maxNotesLen {
		verr.Add("notes", "Notes cannot be more than 500 characters")
	}
	ValidateTags(&verr, req.Tags)
	return verr.Err()
}

// ValidateTags enforces the per-tag length limit shared by moods and journals.
func ValidateTags(verr *dto.ValidationError, tags []string) {
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > maxTagLen {
			verr.Add("tags", "Each tag cannot be more than 20 characters")
			return
		}
	}
}
