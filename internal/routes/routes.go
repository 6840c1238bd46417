package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/okapi-money/okapi/internal/config"
	"github.com/okapi-money/okapi/internal/credential"
	"github.com/okapi-money/okapi/internal/enrollment"
	"github.com/okapi-money/okapi/internal/kvstore"
	"github.com/okapi-money/okapi/internal/middleware"
	"github.com/okapi-money/okapi/internal/notification"
)

const idempotencyTTL = 24 * time.Hour

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, idempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var kv kvstore.Store
	if d.Cache != nil {
		kv = kvstore.NewRedis(d.Cache, "okapi:")
	} else {
		kv = kvstore.NewMemory()
	}

	accounts := credential.NewStore(kv)
	notifier := notification.NewLoggerNotifier(d.Logger)
	enrollSvc := enrollment.NewService(accounts, notifier,
		enrollment.WithResendCooldown(d.Cfg.ResendSeconds),
		enrollment.WithCompletionDelay(d.Cfg.AdvanceDelay))

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterEnrollmentRoutes(api, enrollment.NewHandler(enrollSvc))

	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterSessionRoutes(api, credential.NewHandler(accounts), rateLimiter)

	return nil
}
