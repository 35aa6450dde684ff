package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	db        Pinger
	cache     Pinger
	providers map[string]bool
}

// NewHealthHandler takes a nil cache when Redis is not configured. providers
// maps provider names to whether credentials are present.
func NewHealthHandler(db, cache Pinger, providers map[string]bool) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, providers: providers}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unhealthy: " + err.Error()
		status = "degraded"
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			cacheStatus = "unhealthy: " + err.Error()
		}
	}

	providers := make(map[string]string, len(h.providers))
	for name, configured := range h.providers {
		providers[name] = "not_configured"
		if configured {
			providers[name] = "configured"
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
		Providers: providers,
	})
}
