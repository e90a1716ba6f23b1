package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"
)

// AdminHandler serves audit logs, system settings and access tokens.
type AdminHandler struct {
	audits   service.AuditService
	settings service.SettingsService
	tokens   service.AccessTokenService
	loc      *time.Location
	logger   *zap.Logger
}

func NewAdminHandler(audits service.AuditService, settings service.SettingsService,
	tokens service.AccessTokenService, loc *time.Location, logger *zap.Logger) *AdminHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AdminHandler{audits: audits, settings: settings, tokens: tokens, loc: loc, logger: logger}
}

// GetAuditLogs lists audit entries, newest first.
// Query params: type, user, date_from, date_to (YYYY-MM-DD), limit
// GET /api/v1/audit-logs
func (h *AdminHandler) GetAuditLogs(c *fiber.Ctx) error {
	from, err := queryDate(c, "date_from", h.loc, false)
	if err != nil {
		return badRequest(c, err.Error())
	}
	to, err := queryDate(c, "date_to", h.loc, true)
	if err != nil {
		return badRequest(c, err.Error())
	}

	logs, err := h.audits.List(repository.AuditFilter{
		Type:  c.Query("type"),
		User:  c.Query("user"),
		From:  from,
		To:    to,
		Limit: queryInt(c, "limit", 0),
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return c.JSON(logs)
}

// GET /api/v1/settings
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Current()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(settings)
}

// PUT /api/v1/settings
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req service.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	settings, err := h.settings.Update(&req, middleware.CurrentActor(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Settings updated", "data": settings})
}

// POST /api/v1/access-tokens
func (h *AdminHandler) GenerateAccessToken(c *fiber.Ctx) error {
	token, err := h.tokens.Generate(middleware.CurrentActor(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(token)
}

// GET /api/v1/access-tokens
func (h *AdminHandler) GetAccessTokens(c *fiber.Ctx) error {
	tokens, err := h.tokens.List()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if tokens == nil {
		tokens = []model.AccessToken{}
	}
	return c.JSON(tokens)
}
