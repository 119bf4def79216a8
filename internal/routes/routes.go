// Package routes defines the API routing configuration.
// It installs the global middleware stack and mounts every handler,
// applying authentication and rate limits per route group.
package routes

import (
	"time"

	"emiverify/internal/config"
	"emiverify/internal/handlers"
	"emiverify/internal/middleware"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Insurance    *handlers.InsuranceHandler
	Verification *handlers.VerificationHandler
	Analytics    *handlers.AnalyticsHandler
	Export       *handlers.ExportHandler
	Import       *handlers.ImportHandler
	Health       *handlers.HealthHandler
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, cfg config.ServerConfig, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Env != "production"}))
	app.Use(requestid.New(middleware.RequestIDConfig()), middleware.RequestContext)
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(helmet.New())
	app.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	app.Get("/", h.Health.Welcome)
	app.Get("/health", h.Health.HealthCheck)

	api := app.Group("/api", rateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	api.Get("/", h.Health.APIIndex)

	setupAuthRoutes(api, h.Auth, authMiddleware, rateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow))

	requireAuth := authMiddleware.Handler
	setupRecordRoutes(api, requireAuth, h.Insurance, h.Verification)
	setupAnalyticsRoutes(api, requireAuth, h.Analytics)
	setupExportRoutes(api, requireAuth, h.Export, h.Import)
	api.Get("/cache-stats", requireAuth, h.Health.CacheStats)

	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFound(c, "Route not found")
	})
}

func corsConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: origins != "*",
		ExposeHeaders:    "Content-Disposition, X-Request-ID",
	}
}

func rateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Fail(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	})
}

func setupAuthRoutes(api fiber.Router, h *handlers.AuthHandler, authMiddleware *middleware.AuthMiddleware, limit fiber.Handler) {
	auth := api.Group("/auth")

	auth.Post("/signup", limit, h.Signup)
	auth.Post("/login", limit, h.Login)
	auth.Post("/verify-email", limit, h.VerifyEmail)
	auth.Post("/resend-verification", limit, h.ResendVerification)
	auth.Post("/forgot-password", limit, h.ForgotPassword)
	auth.Post("/reset-password", limit, h.ResetPassword)
	auth.Post("/refresh", h.RefreshToken)

	auth.Post("/logout", authMiddleware.Handler, h.Logout)
	auth.Post("/change-password", authMiddleware.Handler, h.ChangePassword)
	auth.Get("/profile", authMiddleware.Handler, h.GetProfile)
	auth.Put("/profile", authMiddleware.Handler, h.UpdateProfile)
}

func setupRecordRoutes(router fiber.Router, requireAuth fiber.Handler, ins *handlers.InsuranceHandler, ver *handlers.VerificationHandler) {
	cases := router.Group("/insurance-cases", requireAuth)
	cases.Get("/", ins.ListCases)
	cases.Post("/", ins.CreateCase)
	cases.Post("/bulk", ins.BulkCreate)
	cases.Get("/:id", ins.GetCase)
	cases.Put("/:id", ins.UpdateCase)
	cases.Delete("/:id", ins.DeleteCase)

	docs := router.Group("/document-verifications", requireAuth)
	docs.Get("/", ver.ListVerifications)
	docs.Post("/", ver.CreateVerification)
	docs.Post("/bulk", ver.BulkCreate)
	docs.Get("/:id", ver.GetVerification)
	docs.Put("/:id", ver.UpdateVerification)
	docs.Delete("/:id", ver.DeleteVerification)
}

func setupAnalyticsRoutes(router fiber.Router, requireAuth fiber.Handler, h *handlers.AnalyticsHandler) {
	analytics := router.Group("/analytics", requireAuth)
	analytics.Get("/dashboard", h.Dashboard)
	analytics.Get("/insurance-cases", h.InsuranceCases)
	analytics.Get("/document-verifications", h.DocumentVerifications)
}

func setupExportRoutes(router fiber.Router, requireAuth fiber.Handler, exp *handlers.ExportHandler, imp *handlers.ImportHandler) {
	export := router.Group("/export", requireAuth)
	export.Get("/insurance-cases", exp.InsuranceCases)
	export.Get("/document-verifications", exp.DocumentVerifications)
	export.Get("/summary", exp.Summary)

	imports := router.Group("/import", requireAuth)
	imports.Post("/insurance-cases", imp.InsuranceCases)
	imports.Post("/document-verifications", imp.DocumentVerifications)
}
