package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okapi-money/okapi/internal/credential"
)

// RegisterSessionRoutes wires the returning-user endpoints.
func RegisterSessionRoutes(r fiber.Router, h *credential.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/session")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Get("/", h.Session)
	group.Delete("/", h.Logout)
}
