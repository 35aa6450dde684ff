package journals

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps/moods"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/sentiment"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/timeutil"
	"github.com/google/uuid"
)

var ErrJournalNotFound = errors.New("journal entry not found")

const (
	maxTitleLen   = 100
	maxContentLen = 5000
)

// MoodLookup finds the mood logged on a given day. moods.Repository
// satisfies it.
type MoodLookup interface {
	FindByDay(ctx context.Context, userID uuid.UUID, day string) (*moods.MoodEntry, error)
}

type JournalService struct {
	repo   Repository
	moods  MoodLookup
	scorer sentiment.Heuristic
	loc    *time.Location
	now    func() time.Time
}

func NewJournalService(repo Repository, moodLookup MoodLookup, loc *time.Location) *JournalService {
	return &JournalService{
		repo:   repo,
		moods:  moodLookup,
		scorer: sentiment.Exact,
		loc:    loc,
		now:    time.Now,
	}
}

// Submit writes today's journal. A new entry is linked to today's mood when
// one exists; entries are private unless isPrivate is explicitly false.
func (s *JournalService) Submit(ctx context.Context, userID uuid.UUID, req SubmitJournalRequest) (*JournalEntry, bool, error) {
	if err := validateSubmit(req); err != nil {
		return nil, false, err
	}

	now := s.now()
	day := timeutil.DayKey(now, s.loc)
	private := true
	if req.IsPrivate != nil {
		private = *req.IsPrivate
	}

	entry := &JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Day:       day,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		IsPrivate: private,
		Date:      now,
	}
	if req.Tags != nil {
		entry.Tags = req.Tags
	}

	if s.moods != nil {
		mood, err := s.moods.FindByDay(ctx, userID, day)
		switch {
		case err == nil:
			entry.MoodID = &mood.ID
		case !errors.Is(err, moods.ErrMoodNotFound):
			return nil, false, err
		}
	}

	created, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return nil, false, err
	}
	return entry, created, nil
}

// Today returns nil without error when nothing was written today.
func (s *JournalService) Today(ctx context.Context, userID uuid.UUID) (*JournalEntry, error) {
	entry, err := s.repo.FindByDay(ctx, userID, timeutil.DayKey(s.now(), s.loc))
	if errors.Is(err, ErrJournalNotFound) {
		return nil, nil
	}
	return entry, err
}

func (s *JournalService) History(ctx context.Context, userID uuid.UUID, q HistoryQuery) ([]JournalEntry, int64, error) {
	return s.repo.History(ctx, userID, q)
}

// Sentiment returns the entry's cached analysis, computing and storing it on
// first request.
func (s *JournalService) Sentiment(ctx context.Context, userID, id uuid.UUID) (*SentimentView, error) {
	entry, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if cached := entry.Sentiment(); cached != nil {
		return &SentimentView{Sentiment: *cached, Content: entry.Content}, nil
	}

	result := s.scorer.Analyze(entry.Content)
	stored, err := s.repo.SaveSentiment(ctx, userID, id, result)
	if err != nil {
		return nil, err
	}
	if !stored {
		// Lost a race with a concurrent request; report what it saved.
		if entry, err = s.repo.FindByID(ctx, userID, id); err != nil {
			return nil, err
		}
		if cached := entry.Sentiment(); cached != nil {
			result = *cached
		}
	}
	return &SentimentView{Sentiment: result, Content: entry.Content}, nil
}

// SentimentScores returns analyzed journal scores dated on or after from.
func (s *JournalService) SentimentScores(ctx context.Context, userID uuid.UUID, from time.Time) ([]float64, error) {
	return s.repo.SentimentScores(ctx, userID, from)
}

func validateSubmit(req SubmitJournalRequest) error {
	var verr dto.ValidationError
	if utf8.RuneCountInString(req.Title) > maxTitleLen {
		verr.Add("title", "Title cannot be more than 100 characters")
	}
	if n := utf8.RuneCountInString(req.Content); strings.TrimSpace(req.Content) == "" || n > maxContentLen {
		verr.Add("content", "Content is required and cannot be more than 5000 characters")
	}
	moods.ValidateTags(&verr, req.Tags)
	return verr.Err()
}
