package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/example/grama/internal/config"
	"github.com/example/grama/internal/models"
	"github.com/example/grama/internal/otp"
	"github.com/example/grama/internal/store"
)

type fakeChallengeRepo struct {
	challenges []*models.OTPChallenge
}

func (r *fakeChallengeRepo) Latest(phone string) (*models.OTPChallenge, error) {
	for i := len(r.challenges) - 1; i >= 0; i-- {
		if r.challenges[i].Phone == phone && !r.challenges[i].Superseded {
			return r.challenges[i], nil
		}
	}
	return nil, nil
}

func (r *fakeChallengeRepo) Create(challenge *models.OTPChallenge) error {
	r.challenges = append(r.challenges, challenge)
	return nil
}

func (r *fakeChallengeRepo) Save(challenge *models.OTPChallenge) error {
	return nil
}

type fakeUserDirectory struct {
	users map[string]*models.User
}

func (d *fakeUserDirectory) FindOrCreateByPhone(phone string) (*models.User, error) {
	if d.users == nil {
		d.users = make(map[string]*models.User)
	}
	if user, ok := d.users[phone]; ok {
		return user, nil
	}
	user := &models.User{
		BaseModel:       models.BaseModel{ID: uuid.New()},
		Phone:           phone,
		FirstName:       "User",
		LastName:        phone[len(phone)-4:],
		IsPhoneVerified: true,
		Role:            models.RoleCustomer,
	}
	d.users[phone] = user
	return user, nil
}

type silentSender struct{}

func (silentSender) Send(phone, message string) error { return nil }

func newAuthTestApp() *fiber.App {
	cfg := &config.Config{
		Environment:   "development",
		JWTSecret:     "test-secret",
		TokenExpires:  time.Hour,
		OTPTTL:        5 * time.Minute,
		OTPMaxResends: 3,
	}
	manager := otp.NewManager(&fakeChallengeRepo{}, &fakeUserDirectory{}, silentSender{}, cfg.OTPTTL, cfg.OTPMaxResends)
	handler := NewAuthHandler(manager, store.NewMemoryAdapter(), cfg)

	app := fiber.New()
	app.Post("/api/auth/send-otp", handler.SendOTP)
	app.Post("/api/auth/resend-otp", handler.ResendOTP)
	app.Post("/api/auth/verify-otp", handler.VerifyOTP)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var parsed map[string]any
	assert.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func debugOTP(t *testing.T, body map[string]any) string {
	t.Helper()

	debug, ok := body["debug"].(map[string]any)
	assert.True(t, ok, "expected debug payload outside production")
	code, _ := debug["otp"].(string)
	assert.Len(t, code, 6)
	return code
}

func TestSendOTPInvalidPhone(t *testing.T) {
	app := newAuthTestApp()

	resp, body := postJSON(t, app, "/api/auth/send-otp", fiber.Map{"phoneNumber": "12345"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid phone number format", body["error"])
}

func TestSendOTPReturnsDebugCode(t *testing.T) {
	app := newAuthTestApp()

	resp, body := postJSON(t, app, "/api/auth/send-otp", fiber.Map{"phoneNumber": "9876543210"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	debugOTP(t, body)
}

func TestVerifyOTPHappyPath(t *testing.T) {
	app := newAuthTestApp()

	_, sent := postJSON(t, app, "/api/auth/send-otp", fiber.Map{"phoneNumber": "9876543210"})
	code := debugOTP(t, sent)

	resp, body := postJSON(t, app, "/api/auth/verify-otp", fiber.Map{
		"phoneNumber": "9876543210",
		"otp":         code,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "9876543210", user["phoneNumber"])
	assert.Equal(t, "customer", user["role"])

	profile, ok := user["profile"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "3210", profile["lastName"])
	assert.Equal(t, true, profile["isPhoneVerified"])
}

func TestVerifyOTPWrongCode(t *testing.T) {
	app := newAuthTestApp()

	_, sent := postJSON(t, app, "/api/auth/send-otp", fiber.Map{"phoneNumber": "9876543210"})
	code := debugOTP(t, sent)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}

	resp, body := postJSON(t, app, "/api/auth/verify-otp", fiber.Map{
		"phoneNumber": "9876543210",
		"otp":         wrong,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid OTP", body["error"])
}

func TestVerifyOTPMalformedCode(t *testing.T) {
	app := newAuthTestApp()

	resp, body := postJSON(t, app, "/api/auth/verify-otp", fiber.Map{
		"phoneNumber": "9876543210",
		"otp":         "12ab56",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "OTP must be 6 digits", body["error"])
}

func TestVerifyOTPWithoutChallenge(t *testing.T) {
	app := newAuthTestApp()

	resp, body := postJSON(t, app, "/api/auth/verify-otp", fiber.Map{
		"phoneNumber": "9876543210",
		"otp":         "123456",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "OTP expired or not requested", body["error"])
}

func TestResendOTPRetryLimit(t *testing.T) {
	app := newAuthTestApp()

	_, _ = postJSON(t, app, "/api/auth/send-otp", fiber.Map{"phoneNumber": "9876543210"})
	for i := 0; i < 3; i++ {
		resp, _ := postJSON(t, app, "/api/auth/resend-otp", fiber.Map{"phoneNumber": "9876543210"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, body := postJSON(t, app, "/api/auth/resend-otp", fiber.Map{"phoneNumber": "9876543210"})
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Maximum retry attempts reached", body["error"])
}
