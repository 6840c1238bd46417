package enrollment

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/okapi-money/okapi/internal/credential"
)

// Handler exposes the sign-up wizard over HTTP. Closed forward gates are
// reported as advanced=false in the state payload, never as error objects.
type Handler struct {
	service *Service
}

// NewHandler constructs an enrollment HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Begin starts a fresh enrollment draft.
func (h *Handler) Begin(c *fiber.Ctx) error {
	id, m := h.service.Begin()
	return c.Status(http.StatusCreated).JSON(stateJSON(id, m, true))
}

// Status reports the current step and gate without mutating anything.
func (h *Handler) Status(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	return c.JSON(stateJSON(id, m, true))
}

// Phone records the number and calling country, then tries to advance.
func (h *Handler) Phone(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	var req struct {
		Digits  string `json:"digits"`
		Country string `json:"country"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Country != "" && !m.SetCallingCountry(req.Country) {
		return fiber.NewError(http.StatusBadRequest, "unknown country code")
	}
	m.SetPhoneDigits(req.Digits)
	return c.JSON(stateJSON(id, m, m.CompletePhoneEntry()))
}

// OTPDigit applies one slot input event.
func (h *Handler) OTPDigit(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	var req struct {
		Slot  int    `json:"slot"`
		Input string `json:"input"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	m.EnterOTPDigit(req.Slot, req.Input)
	return c.JSON(stateJSON(id, m, true))
}

// OTPResend requests the code again once the cooldown has elapsed.
func (h *Handler) OTPResend(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	resent := m.ResendOTP()
	resp := stateJSON(id, m, true)
	resp["resent"] = resent
	return c.JSON(resp)
}

// Back steps to the preceding screen.
func (h *Handler) Back(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	return c.JSON(stateJSON(id, m, m.GoBack()))
}

// Notifications records the opt-in choice and advances.
func (h *Handler) Notifications(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	m.SetNotificationsOptIn(req.Enabled)
	return c.JSON(stateJSON(id, m, m.CompleteNotifications()))
}

// Residence selects the country of residence and advances.
func (h *Handler) Residence(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	var req struct {
		Country string `json:"country"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Country != "" && !m.SetResidence(req.Country) {
		return fiber.NewError(http.StatusBadRequest, "unknown country code")
	}
	return c.JSON(stateJSON(id, m, m.CompleteCountryOfResidence()))
}

// Name records the name fields and tries to advance.
func (h *Handler) Name(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Alias     string `json:"alias"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	m.SetName(req.FirstName, req.LastName, req.Alias)
	return c.JSON(stateJSON(id, m, m.CompleteNameEntry()))
}

// Email records the address and tries to advance.
func (h *Handler) Email(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	m.SetEmail(req.Email)
	return c.JSON(stateJSON(id, m, m.CompleteEmailEntry()))
}

// BirthDate records the raw date components and tries to advance.
func (h *Handler) BirthDate(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	var req struct {
		Month string `json:"month"`
		Day   string `json:"day"`
		Year  string `json:"year"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	m.SetBirthDate(req.Month, req.Day, req.Year)
	return c.JSON(stateJSON(id, m, m.CompleteDateOfBirth()))
}

// Passcode records the passcode buffer and, when the gate is open,
// completes the enrollment by creating the account.
func (h *Handler) Passcode(c *fiber.Ctx) error {
	id, m, err := h.machine(c)
	if err != nil {
		return err
	}
	var req struct {
		Digits string `json:"digits"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	m.SetPasscode(req.Digits)

	account, err := m.CompleteCreatePasscode(c.UserContext())
	switch {
	case errors.Is(err, ErrStepIncomplete):
		return c.JSON(stateJSON(id, m, false))
	case errors.Is(err, credential.ErrDuplicateEmail):
		// Recoverable: the draft survives so the user can back up and
		// change the email.
		return fiber.NewError(http.StatusConflict, err.Error())
	case err != nil:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	h.service.Remove(id)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"account_id": account.ID,
		"name":       account.Name,
		"email":      account.Email,
	})
}

// Abandon discards the draft and cancels its timers.
func (h *Handler) Abandon(c *fiber.Ctx) error {
	h.service.Remove(c.Params("id"))
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handler) machine(c *fiber.Ctx) (string, *Machine, error) {
	id := c.Params("id")
	m, ok := h.service.Get(id)
	if !ok {
		return "", nil, fiber.NewError(http.StatusNotFound, "unknown enrollment")
	}
	return id, m, nil
}

func stateJSON(id string, m *Machine, advanced bool) fiber.Map {
	step := m.Step()
	resp := fiber.Map{
		"enrollment_id": id,
		"step":          step.String(),
		"advanced":      advanced,
		"can_advance":   m.CanAdvance(),
	}
	if step == StepOTPVerification {
		slots := m.OTPSlots()
		resp["otp"] = fiber.Map{
			"slots":     slots[:],
			"focus":     m.OTPFocus(),
			"resend_in": m.ResendRemaining(),
		}
	}
	return resp
}
