package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	mu   sync.Mutex
	logs []models.SystemLog
}

func (s *memorySink) SaveLogs(logs []models.SystemLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, logs...)
	return nil
}

func (s *memorySink) all() []models.SystemLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SystemLog(nil), s.logs...)
}

func TestDBHandlerPersistsErrorsOnly(t *testing.T) {
	sink := &memorySink{}
	h := NewDBHandler(sink, time.Hour)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("ignored")
	logger.Warn("ignored too")
	logger.Error("journal write failed",
		"error", errors.New("boom"),
		"user_id", "u-1",
		"path", "/api/journals",
		"latency_ms", 12.6,
		"journal_id", "j-9",
	)
	h.Stop()

	logs := sink.all()
	require.Len(t, logs, 1)
	got := logs[0]
	assert.Equal(t, "ERROR", got.Level)
	assert.Equal(t, "journal write failed", got.Message)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "boom", got.Error)
	assert.Equal(t, "/api/journals", got.Path)
	assert.Equal(t, 13, got.LatencyMs)
	require.NotNil(t, got.UserID)
	assert.Equal(t, "u-1", *got.UserID)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(got.Extra, &extra))
	assert.Equal(t, "j-9", extra["journal_id"])
}

func TestDBHandlerFlushesFullBatch(t *testing.T) {
	sink := &memorySink{}
	h := NewDBHandler(sink, time.Hour)
	defer h.Stop()

	logger := slog.New(h)
	for i := 0; i < batchSize; i++ {
		logger.Error("failure", "n", i)
	}

	assert.Eventually(t, func() bool { return len(sink.all()) == batchSize }, time.Second, 10*time.Millisecond)
}

func TestDBHandlerStopIsIdempotent(t *testing.T) {
	h := NewDBHandler(&memorySink{}, time.Hour)
	h.Stop()
	assert.NotPanics(t, h.Stop)
}

func TestMultiHandlerFansOut(t *testing.T) {
	var buf bytes.Buffer
	sink := &memorySink{}
	db := NewDBHandler(sink, time.Hour)

	logger := slog.New(NewMultiHandler(NewStdoutHandler(&buf, slog.LevelInfo), db))
	logger.Info("hello")
	logger.Error("bad", "provider", "quotes_api")
	db.Stop()

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"msg":"bad"`)
	logs := sink.all()
	require.Len(t, logs, 1)
	assert.Equal(t, "quotes_api", logs[0].Provider)
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func (f failingHandler) WithAttrs([]slog.Attr) slog.Handler { return f }

func TestMultiHandlerSurvivesFailingHandler(t *testing.T) {
	var buf bytes.Buffer
	stdout := NewStdoutHandler(&buf, slog.LevelInfo)
	multi := NewMultiHandler(failingHandler{stdout}, stdout)

	err := multi.WithAttrs([]slog.Attr{slog.String("user_id", "u1")}).
		Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "boom", 0))
	assert.EqualError(t, err, "sink down")
	assert.Contains(t, buf.String(), `"user_id":"u1"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
