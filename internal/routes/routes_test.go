package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/config"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPlugin struct{}

func (echoPlugin) ID() string            { return "echo" }
func (echoPlugin) Models() []interface{} { return nil }

func (echoPlugin) RegisterRoutes(r fiber.Router) {
	r.Get("/echo", func(c *fiber.Ctx) error {
		id, err := identity.GetUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user": id.String()})
	})
	r.Get("/boom", func(*fiber.Ctx) error { return errors.New("db exploded") })
}

var _ apps.Plugin = echoPlugin{}

const secret = "routes-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{JWTSecret: secret, CORSOrigins: "*"}
	app := NewApp(cfg)

	auth := handlers.NewAuthHandler(services.NewAuthService(nil, services.TokenConfig{Secret: secret}))
	ok := handlers.PingFunc(func(context.Context) error { return nil })
	Setup(app, cfg, Deps{
		Auth:    auth,
		Health:  handlers.NewHealthHandler(ok, nil, nil),
		Plugins: []apps.Plugin{echoPlugin{}},
	})
	return app
}

func token(t *testing.T, sub uuid.UUID) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub.String(),
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func get(t *testing.T, app *fiber.App, target, bearer string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestHealthIsPublic(t *testing.T) {
	resp, body := get(t, newTestApp(t), "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestPluginsRequireToken(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/echo", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	user := uuid.New()
	resp, body = get(t, app, "/api/echo", token(t, user))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, user.String(), body["user"])
}

func TestErrorHandlerHidesServerErrors(t *testing.T) {
	resp, body := get(t, newTestApp(t), "/api/boom", token(t, uuid.New()))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Equal(t, false, body["success"])
}

func TestErrorHandlerKeepsClientErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/teapot", func(*fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	resp, body := get(t, app, "/teapot", "")
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "short and stout", body["message"])
}
