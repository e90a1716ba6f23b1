package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/service"
)

type BuyerHandler struct {
	service service.BuyerService
	logger  *zap.Logger
}

func NewBuyerHandler(s service.BuyerService, logger *zap.Logger) *BuyerHandler {
	return &BuyerHandler{service: s, logger: logger}
}

// GET /api/v1/buyers?search=
func (h *BuyerHandler) GetBuyers(c *fiber.Ctx) error {
	buyers, err := h.service.GetAllBuyers(c.Query("search"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if buyers == nil {
		buyers = []model.Buyer{}
	}
	return c.JSON(buyers)
}

// GET /api/v1/buyers/:id
func (h *BuyerHandler) GetBuyer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid buyer ID")
	}

	buyer, err := h.service.GetBuyer(id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(buyer)
}

// POST /api/v1/buyers
func (h *BuyerHandler) CreateBuyer(c *fiber.Ctx) error {
	var req service.BuyerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	buyer, err := h.service.CreateBuyer(&req, middleware.CurrentActor(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Buyer created", "data": buyer})
}

// PUT /api/v1/buyers/:id
func (h *BuyerHandler) UpdateBuyer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid buyer ID")
	}

	var req service.BuyerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	buyer, err := h.service.UpdateBuyer(id, &req, middleware.CurrentActor(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Buyer updated", "data": buyer})
}

// DELETE /api/v1/buyers/:id
func (h *BuyerHandler) DeleteBuyer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid buyer ID")
	}

	if err := h.service.DeleteBuyer(id, middleware.CurrentActor(c)); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Buyer deleted"})
}
