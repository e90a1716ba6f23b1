package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(response)
}

// RedeemToken creates a sales account from a one-time access token
// POST /api/v1/auth/redeem-token
func (h *AuthHandler) RedeemToken(c *fiber.Ctx) error {
	var req service.RedeemTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	response, err := h.authService.RedeemAccessToken(&req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ChangePassword changes the caller's own password
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return badRequest(c, "old_password and new_password are required")
	}

	if err := h.authService.ChangePassword(middleware.CurrentUserID(c), req.OldPassword, req.NewPassword); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// POST /api/v1/auth/heartbeat
func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	if err := h.authService.Heartbeat(middleware.CurrentUserID(c)); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "Heartbeat received", "status": "online"})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.CurrentUserID(c)); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// ValidateTokenRequest represents the validate token request body
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateToken handles JWT token validation
// POST /api/v1/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	if req.Token == "" {
		return badRequest(c, "Token is required")
	}

	response, err := h.authService.ValidateToken(req.Token)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(response)
}
