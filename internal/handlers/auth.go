package handlers

import (
	"errors"
	"log"
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/example/grama/internal/config"
	"github.com/example/grama/internal/middleware"
	"github.com/example/grama/internal/models"
	"github.com/example/grama/internal/otp"
	"github.com/example/grama/internal/store"
	"github.com/example/grama/internal/utils"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// AuthHandler bundles dependencies for the OTP login endpoints.
type AuthHandler struct {
	manager   *otp.Manager
	snapshots store.Adapter
	cfg       *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(manager *otp.Manager, snapshots store.Adapter, cfg *config.Config) *AuthHandler {
	return &AuthHandler{manager: manager, snapshots: snapshots, cfg: cfg}
}

type sendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// SendOTP issues a verification challenge and dispatches the code.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	receipt, err := h.manager.RequestChallenge(req.PhoneNumber)
	if err != nil {
		return h.challengeError(c, err)
	}

	resp := fiber.Map{
		"success": true,
		"message": "OTP sent successfully",
	}
	// The code itself never leaves the server in production.
	if !h.cfg.IsProduction() {
		resp["debug"] = fiber.Map{"otp": receipt.Code}
	}

	return c.JSON(resp)
}

// ResendOTP supersedes the pending challenge with a fresh code.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	receipt, err := h.manager.ResendChallenge(req.PhoneNumber)
	if err != nil {
		return h.challengeError(c, err)
	}

	resp := fiber.Map{
		"success": true,
		"message": "OTP resent successfully",
	}
	if !h.cfg.IsProduction() {
		resp["debug"] = fiber.Map{"otp": receipt.Code}
	}

	return c.JSON(resp)
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

// VerifyOTP consumes the pending challenge and signs the shopper in.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.PhoneNumber == "" || req.OTP == "" {
		return badRequest(c, "Phone number and OTP are required")
	}
	if !otp.ValidPhone(req.PhoneNumber) {
		return badRequest(c, "Invalid phone number format")
	}
	if !otpPattern.MatchString(req.OTP) {
		return badRequest(c, "OTP must be 6 digits")
	}

	user, err := h.manager.VerifyChallenge(req.PhoneNumber, req.OTP)
	if err != nil {
		return h.challengeError(c, err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.TokenExpires)
	if err != nil {
		log.Printf("[Auth] Token generation failed: %v", err)
		return internalError(c)
	}

	if err := h.snapshots.Save(store.AuthKey(user.ID.String()), models.AuthSnapshot{
		User:            user,
		IsAuthenticated: true,
	}); err != nil {
		log.Printf("[Auth] Failed to persist session snapshot: %v", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP verified successfully",
		"user":    userResponse(user),
		"token":   token,
	})
}

// Session restores the persisted auth snapshot for the token's user.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	snapshot := models.AuthSnapshot{}
	found, err := h.snapshots.Load(store.AuthKey(userID.String()), &snapshot)
	if err != nil {
		log.Printf("[Auth] Discarding unreadable session snapshot: %v", err)
	}
	if !found || err != nil {
		snapshot = models.AuthSnapshot{}
	}

	return c.JSON(fiber.Map{"success": true, "data": snapshot})
}

// Logout destroys the persisted session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.snapshots.Delete(store.AuthKey(userID.String())); err != nil {
		log.Printf("[Auth] Failed to delete session snapshot: %v", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

func (h *AuthHandler) challengeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, otp.ErrInvalidPhoneFormat):
		return badRequest(c, "Invalid phone number format")
	case errors.Is(err, otp.ErrNoActiveChallenge):
		return badRequest(c, "OTP expired or not requested")
	case errors.Is(err, otp.ErrCodeMismatch):
		return badRequest(c, "Invalid OTP")
	case errors.Is(err, otp.ErrRetryLimitExceeded):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false,
			"error":   "Maximum retry attempts reached",
		})
	case errors.Is(err, otp.ErrDeliveryFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "Could not send OTP, please try again",
		})
	default:
		log.Printf("[Auth] Unexpected challenge error: %v", err)
		return internalError(c)
	}
}

func userResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":          user.ID,
		"phoneNumber": user.Phone,
		"profile": fiber.Map{
			"firstName":       user.FirstName,
			"lastName":        user.LastName,
			"isPhoneVerified": user.IsPhoneVerified,
		},
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}
