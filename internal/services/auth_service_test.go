package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*models.User
	tokens map[string]*models.RefreshToken
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{
		users:  make(map[uuid.UUID]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (m *memoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailTaken
		}
	}
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *memoryUserStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *memoryUserStore) FindUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUserStore) UpdateUser(_ context.Context, id uuid.UUID, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["email"].(string); ok {
		u.Email = v
	}
	return nil
}

func (m *memoryUserStore) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *token
	m.tokens[token.TokenHash] = &t
	return nil
}

func (m *memoryUserStore) ConsumeRefreshToken(_ context.Context, hash string, now time.Time) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[hash]
	if !ok || t.Revoked || !t.ExpiresAt.After(now) {
		return nil, ErrInvalidToken
	}
	t.Revoked = true
	cp := *t
	return &cp, nil
}

func (m *memoryUserStore) RevokeRefreshToken(_ context.Context, userID uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[hash]; ok && t.UserID == userID {
		t.Revoked = true
	}
	return nil
}

const testSecret = "test-secret"

func newTestAuth() (*AuthService, *memoryUserStore) {
	store := newMemoryUserStore()
	svc := NewAuthService(store, TokenConfig{
		Secret:        testSecret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	return svc, store
}

func signup(t *testing.T, svc *AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name: "  Asha  ", Email: "Asha@Example.com", Password: "secret1",
	})
	require.NoError(t, err)
	return resp
}

func TestSignupIssuesTokens(t *testing.T) {
	svc, _ := newTestAuth()
	resp := signup(t, svc)

	assert.Equal(t, "Asha", resp.User.Name)
	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.RefreshToken)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "asha@example.com", claims["email"])
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestAuth()

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{Name: "A", Email: "nope", Password: "123"})
	require.Error(t, err)

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"name", "email", "password"}, fields)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth()
	signup(t, svc)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name: "Other", Email: "asha@example.com", Password: "secret2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuth()
	signup(t, svc)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", resp.User.Name)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestAuth()
	first := signup(t, svc)
	ctx := context.Background()

	second, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsExpired(t *testing.T) {
	svc, _ := newTestAuth()
	resp := signup(t, svc)
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokes(t *testing.T) {
	svc, _ := newTestAuth()
	resp := signup(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, resp.User.ID, &dto.LogoutRequest{RefreshToken: resp.RefreshToken}))
	_, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestAuth()
	resp := signup(t, svc)
	ctx := context.Background()

	name := "Asha K"
	updated, err := svc.UpdateProfile(ctx, resp.User.ID, &dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "asha@example.com", updated.Email)

	bad := "x"
	_, err = svc.UpdateProfile(ctx, resp.User.ID, &dto.UpdateProfileRequest{Name: &bad})
	var verr *dto.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Signup(ctx, &dto.SignupRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)
	taken := "ravi@example.com"
	_, err = svc.UpdateProfile(ctx, resp.User.ID, &dto.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCheckEmail(t *testing.T) {
	for email, valid := range map[string]bool{
		"a@b.co":              true,
		"first.last@mail.org": true,
		"Asha <a@b.co>":       false,
		"a@localhost":         false,
		"@b.co":               false,
		"":                    false,
	} {
		var verr dto.ValidationError
		checkEmail(&verr, email)
		assert.Equal(t, valid, verr.Err() == nil, email)
	}
}
