package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okapi-money/okapi/internal/enrollment"
)

// RegisterEnrollmentRoutes wires the sign-up wizard endpoints. One draft
// per enrollment ID; every step submission reports the resulting step and
// whether the forward gate let it advance.
func RegisterEnrollmentRoutes(r fiber.Router, h *enrollment.Handler) {
	group := r.Group("/enroll")
	group.Post("/", h.Begin)
	group.Get("/:id", h.Status)
	group.Delete("/:id", h.Abandon)
	group.Post("/:id/phone", h.Phone)
	group.Post("/:id/otp", h.OTPDigit)
	group.Post("/:id/otp/resend", h.OTPResend)
	group.Post("/:id/back", h.Back)
	group.Post("/:id/notifications", h.Notifications)
	group.Post("/:id/residence", h.Residence)
	group.Post("/:id/name", h.Name)
	group.Post("/:id/email", h.Email)
	group.Post("/:id/birthdate", h.BirthDate)
	group.Post("/:id/passcode", h.Passcode)
}
