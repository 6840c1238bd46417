package enrollment

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/okapi-money/okapi/internal/credential"
	"github.com/okapi-money/okapi/internal/kvstore"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := credential.NewStore(kvstore.NewMemory())
	svc := NewService(store, nil,
		WithCompletionDelay(0),
		WithResendCooldown(1),
		withCountdownInterval(2*time.Millisecond),
	)
	h := NewHandler(svc)

	app := fiber.New()
	app.Post("/enroll", h.Begin)
	app.Get("/enroll/:id", h.Status)
	app.Delete("/enroll/:id", h.Abandon)
	app.Post("/enroll/:id/phone", h.Phone)
	app.Post("/enroll/:id/otp", h.OTPDigit)
	app.Post("/enroll/:id/otp/resend", h.OTPResend)
	app.Post("/enroll/:id/back", h.Back)
	app.Post("/enroll/:id/notifications", h.Notifications)
	app.Post("/enroll/:id/residence", h.Residence)
	app.Post("/enroll/:id/name", h.Name)
	app.Post("/enroll/:id/email", h.Email)
	app.Post("/enroll/:id/birthdate", h.BirthDate)
	app.Post("/enroll/:id/passcode", h.Passcode)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	if len(payload) > 0 && resp.Header.Get(fiber.HeaderContentType) != "" {
		_ = json.Unmarshal(payload, &decoded)
	}
	return resp.StatusCode, decoded
}

func TestHandlerFullWalkthrough(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/enroll", "")
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "phoneEntry", body["step"])
	id, _ := body["enrollment_id"].(string)
	require.NotEmpty(t, id)
	base := "/enroll/" + id

	status, body = doJSON(t, app, fiber.MethodPost, base+"/phone", `{"digits":"991234567","country":"CD"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "otpVerification", body["step"])
	require.Equal(t, true, body["advanced"])

	status, body = doJSON(t, app, fiber.MethodPost, base+"/otp", `{"slot":0,"input":"123456"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "notifications", body["step"], "a full paste auto-advances")

	status, body = doJSON(t, app, fiber.MethodPost, base+"/notifications", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "countryOfResidence", body["step"])

	status, body = doJSON(t, app, fiber.MethodPost, base+"/residence", `{"country":"KE"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "nameEntry", body["step"])

	status, body = doJSON(t, app, fiber.MethodPost, base+"/name", `{"first_name":"Jane","last_name":"Doe"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "emailEntry", body["step"])

	status, body = doJSON(t, app, fiber.MethodPost, base+"/email", `{"email":"jane@example.com"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "dateOfBirth", body["step"])

	status, body = doJSON(t, app, fiber.MethodPost, base+"/birthdate", `{"month":"03","day":"14","year":"1990"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "createPasscode", body["step"])

	status, body = doJSON(t, app, fiber.MethodPost, base+"/passcode", `{"digits":"123456"}`)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "jane@example.com", body["email"])
	require.NotEmpty(t, body["account_id"])

	// The draft is gone once the account exists.
	status, _ = doJSON(t, app, fiber.MethodGet, base, "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestHandlerClosedGateIsNotAnError(t *testing.T) {
	app := newTestApp(t)

	_, body := doJSON(t, app, fiber.MethodPost, "/enroll", "")
	id, _ := body["enrollment_id"].(string)
	base := "/enroll/" + id

	status, body := doJSON(t, app, fiber.MethodPost, base+"/phone", `{"digits":"12"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, body["advanced"])
	require.Equal(t, "phoneEntry", body["step"])
}

func TestHandlerUnknownEnrollment(t *testing.T) {
	app := newTestApp(t)
	status, _ := doJSON(t, app, fiber.MethodGet, "/enroll/nope", "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestHandlerAbandonCancelsDraft(t *testing.T) {
	app := newTestApp(t)

	_, body := doJSON(t, app, fiber.MethodPost, "/enroll", "")
	id, _ := body["enrollment_id"].(string)
	base := "/enroll/" + id

	status, _ := doJSON(t, app, fiber.MethodDelete, base, "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = doJSON(t, app, fiber.MethodGet, base, "")
	require.Equal(t, http.StatusNotFound, status)
}
