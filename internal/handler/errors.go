package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"
	"go-backoffice/internal/stock"
	"go-backoffice/pkg/jwt"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Checked in order; ErrDuplicate must precede ErrPersistence because the
// stock package wraps unique violations in both.
var errorMappings = []errorMapping{
	{stock.ErrInsufficientStock, fiber.StatusBadRequest, "insufficient_stock"},
	{stock.ErrInvalidAdjustment, fiber.StatusBadRequest, "invalid_adjustment"},
	{stock.ErrInvalidSale, fiber.StatusBadRequest, "invalid_request"},
	{service.ErrInvalidInput, fiber.StatusBadRequest, "invalid_request"},
	{service.ErrWrongPassword, fiber.StatusBadRequest, "invalid_request"},
	{service.ErrCannotDeleteSelf, fiber.StatusBadRequest, "invalid_request"},
	{service.ErrInvalidAccessToken, fiber.StatusBadRequest, "invalid_access_token"},
	{stock.ErrNotFound, fiber.StatusNotFound, "not_found"},
	{service.ErrProductNotFound, fiber.StatusNotFound, "not_found"},
	{service.ErrBuyerNotFound, fiber.StatusNotFound, "not_found"},
	{service.ErrTransactionNotFound, fiber.StatusNotFound, "not_found"},
	{service.ErrNotificationNotFound, fiber.StatusNotFound, "not_found"},
	{service.ErrRoleNotFound, fiber.StatusNotFound, "not_found"},
	{service.ErrUserNotFound, fiber.StatusNotFound, "not_found"},
	{repository.ErrDuplicate, fiber.StatusConflict, "conflict"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "invalid_credentials"},
	{service.ErrUserInactive, fiber.StatusUnauthorized, "user_inactive"},
	{service.ErrSessionTimeout, fiber.StatusUnauthorized, "session_timeout"},
	{service.ErrSessionReplaced, fiber.StatusUnauthorized, "session_replaced"},
	{jwt.ErrInvalidToken, fiber.StatusUnauthorized, "unauthorized"},
	{stock.ErrPersistence, fiber.StatusInternalServerError, "persistence_failure"},
}

// respondError writes the JSON error body for err. Unknown errors are
// logged and reported as 500 without their text.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.status >= fiber.StatusInternalServerError {
			logger.Error("request failed", zap.String("path", utils.CopyString(c.Path())), zap.Error(err))
			return c.Status(m.status).JSON(fiber.Map{"error": "Failed to save changes", "code": m.code})
		}
		return c.Status(m.status).JSON(fiber.Map{"error": err.Error(), "code": m.code})
	}

	logger.Error("unhandled error", zap.String("path", utils.CopyString(c.Path())), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error", "code": "internal_error"})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message, "code": "invalid_request"})
}
