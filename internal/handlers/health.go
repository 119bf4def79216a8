package handlers

import (
	"context"
	"time"

	"emiverify/internal/repositories/cache"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	pingDB Pinger
	store  cache.Store
	env    string
}

func NewHealthHandler(pingDB Pinger, store cache.Store, env string) *HealthHandler {
	return &HealthHandler{pingDB: pingDB, store: store, env: env}
}

func (h *HealthHandler) Welcome(c *fiber.Ctx) error {
	return utils.Success(c, "Welcome to the EMI Verify API", fiber.Map{
		"version": Version,
		"health":  "/health",
		"api":     "/api",
	})
}

// HealthCheck pings the database and the cache; any failure yields 503
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"database": "connected", "cache": "connected"}
	status, state := fiber.StatusOK, "ok"
	if err := h.pingDB(ctx); err != nil {
		services["database"] = "unavailable"
		status, state = fiber.StatusServiceUnavailable, "degraded"
	}
	if err := h.store.Ping(ctx); err != nil {
		services["cache"] = "unavailable"
		status, state = fiber.StatusServiceUnavailable, "degraded"
	}

	return utils.Respond(c, status, utils.Envelope{
		Success: status == fiber.StatusOK,
		Message: "EMI Verify API health",
		Data: fiber.Map{
			"status":      state,
			"version":     Version,
			"environment": h.env,
			"timestamp":   time.Now().UTC(),
			"services":    services,
		},
	})
}

func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	return utils.Success(c, "", fiber.Map{"cache_stats": h.store.Stats()})
}

// APIIndex lists the route groups.
func (h *HealthHandler) APIIndex(c *fiber.Ctx) error {
	return utils.Success(c, "EMI Verify API", fiber.Map{
		"version": Version,
		"endpoints": fiber.Map{
			"auth":                   "/api/auth",
			"insurance_cases":        "/api/insurance-cases",
			"document_verifications": "/api/document-verifications",
			"analytics":              "/api/analytics",
			"export":                 "/api/export",
			"import":                 "/api/import",
		},
	})
}
