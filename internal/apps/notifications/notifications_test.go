package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/models"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu   sync.Mutex
	list []Notification
}

func (m *memoryRepo) Create(_ context.Context, n *Notification) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.list {
		if n.Day != nil && e.Day != nil && e.UserID == n.UserID && e.Type == n.Type && *e.Day == *n.Day {
			return false, nil
		}
	}
	n.CreatedAt = time.Now()
	m.list = append(m.list, *n)
	return true, nil
}

func (m *memoryRepo) List(_ context.Context, userID uuid.UUID, q ListQuery) ([]Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Notification
	for _, n := range m.list {
		if n.UserID == userID && (!q.UnreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	start := min((q.Page-1)*q.Limit, len(out))
	end := min(start+q.Limit, len(out))
	return out[start:end], int64(len(out)), nil
}

func (m *memoryRepo) MarkRead(_ context.Context, userID, id uuid.UUID) (*Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.list {
		if m.list[i].UserID == userID && m.list[i].ID == id {
			m.list[i].IsRead = true
			n := m.list[i]
			return &n, nil
		}
	}
	return nil, ErrNotificationNotFound
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func (m *memoryUsers) FindUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) SetReminderTime(_ context.Context, id uuid.UUID, hhmm *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return services.ErrUserNotFound
	}
	u.ReminderTime = hhmm
	return nil
}

func (m *memoryUsers) UsersWithReminderAt(_ context.Context, hhmm string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if u.ReminderTime != nil && *u.ReminderTime == hhmm {
			out = append(out, *u)
		}
	}
	return out, nil
}

type loggedSet map[uuid.UUID]error

func (l loggedSet) HasLoggedToday(_ context.Context, id uuid.UUID) (bool, error) {
	err, ok := l[id]
	return ok && err == nil, err
}

var (
	alice = uuid.MustParse("6f1c3a52-5555-4c1e-9c38-1f0c9b2d0a05")
	bob   = uuid.MustParse("6f1c3a52-6666-4c1e-9c38-1f0c9b2d0a06")
	carol = uuid.MustParse("6f1c3a52-7777-4c1e-9c38-1f0c9b2d0a07")
)

func newTestService(logged loggedSet) (*NotificationService, *memoryRepo, *memoryUsers) {
	repo := &memoryRepo{}
	users := &memoryUsers{users: map[uuid.UUID]*models.User{
		alice: {ID: alice, Name: "Alice"},
		bob:   {ID: bob, Name: "Bob"},
		carol: {ID: carol, Name: "Carol"},
	}}
	return NewNotificationService(repo, users, logged, time.UTC), repo, users
}

func TestNormalizeReminder(t *testing.T) {
	for in, want := range map[string]string{
		"9:05":  "09:05",
		"09:05": "09:05",
		"23:59": "23:59",
		"0:00":  "00:00",
	} {
		got, err := NormalizeReminder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"24:00", "12:60", "7", "noon", "", "12:5"} {
		_, err := NormalizeReminder(in)
		var verr *dto.ValidationError
		require.ErrorAs(t, err, &verr, in)
		assert.Equal(t, "Time must be in HH:MM format", verr.Fields[0].Message)
	}
}

func TestDispatchReminders(t *testing.T) {
	svc, repo, users := newTestService(loggedSet{bob: nil, carol: errors.New("db down")})
	ctx := context.Background()

	for _, id := range []uuid.UUID{alice, bob, carol} {
		_, err := svc.SetReminder(ctx, id, "8:30")
		require.NoError(t, err)
	}
	other := "09:00"
	users.users[alice].ReminderTime = &other

	at := time.Date(2026, 10, 14, 9, 0, 30, 0, time.UTC)
	sent, err := svc.DispatchReminders(ctx, at)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, repo.list, 1)
	assert.Equal(t, alice, repo.list[0].UserID)
	assert.Equal(t, TypeReminder, repo.list[0].Type)

	// Same day again is a no-op.
	sent, err = svc.DispatchReminders(ctx, at.Add(time.Second))
	require.NoError(t, err)
	assert.Zero(t, sent)

	// Bob logged a mood and Carol's check failed: neither is reminded.
	sent, err = svc.DispatchReminders(ctx, time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, sent)

	sent, err = svc.DispatchReminders(ctx, at.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestDispatchUsesServiceTimezone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	repo := &memoryRepo{}
	hhmm := "20:00"
	users := &memoryUsers{users: map[uuid.UUID]*models.User{alice: {ID: alice, ReminderTime: &hhmm}}}
	svc := NewNotificationService(repo, users, nil, kolkata)

	sent, err := svc.DispatchReminders(context.Background(), time.Date(2026, 10, 14, 14, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, "2026-10-14", *repo.list[0].Day)
}

func TestNotificationRoutes(t *testing.T) {
	svc, repo, _ := newTestService(loggedSet{})
	app := fiber.New()
	New(svc).RegisterRoutes(app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals(identity.LocalsKey, &jwt.Token{Claims: jwt.MapClaims{"sub": alice.String()}})
		return c.Next()
	}))

	call := func(method, target, body string) (int, map[string]any) {
		t.Helper()
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return resp.StatusCode, out
	}

	status, body := call(http.MethodPost, "/api/notifications/reminder", `{"time":"7:15"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "07:15", body["data"].(map[string]any)["reminderTime"])

	status, body = call(http.MethodPost, "/api/notifications/reminder", `{"time":"7.15"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation error", body["message"])

	status, body = call(http.MethodGet, "/api/notifications/reminder", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "07:15", body["data"].(map[string]any)["reminderTime"])

	status, body = call(http.MethodDelete, "/api/notifications/reminder", "")
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["data"].(map[string]any)["reminderTime"])

	_, err := repo.Create(context.Background(), &Notification{
		ID: uuid.New(), UserID: alice, Type: TypeSystem, Title: "Hi", Message: "Welcome",
	})
	require.NoError(t, err)

	status, body = call(http.MethodGet, "/api/notifications?unreadOnly=true", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])
	id := body["data"].([]any)[0].(map[string]any)["id"].(string)

	status, body = call(http.MethodPut, "/api/notifications/"+id+"/read", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]any)["isRead"])

	status, body = call(http.MethodGet, "/api/notifications?unreadOnly=true", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["total"])
	assert.Equal(t, []any{}, body["data"])

	status, _ = call(http.MethodPut, "/api/notifications/"+uuid.NewString()+"/read", "")
	assert.Equal(t, http.StatusNotFound, status)
}
