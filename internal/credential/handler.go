package credential

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the returning-user surface: login, session lookup and
// logout. Account creation only happens through enrollment completion.
type Handler struct {
	store *Store
}

// NewHandler constructs a credential HTTP handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountResponse struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// Login verifies credentials and establishes the session.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, err := h.store.Authenticate(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(accountResponse{AccountID: account.ID, Name: account.Name, Email: account.Email})
}

// Session resolves the current session, if any.
func (h *Handler) Session(c *fiber.Ctx) error {
	account, ok := h.store.CurrentSession(c.UserContext())
	if !ok {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"account":       accountResponse{AccountID: account.ID, Name: account.Name, Email: account.Email},
	})
}

// Logout clears the session. Idempotent.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.store.Logout(c.UserContext()); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}
