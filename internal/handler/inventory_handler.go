package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"
)

const defaultStockLogLimit = 100

type InventoryHandler struct {
	service service.InventoryService
	logger  *zap.Logger
}

func NewInventoryHandler(s service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{service: s, logger: logger}
}

// POST /api/v1/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.CreateProduct(c.UserContext(), &req, middleware.CurrentActor(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

// PUT /api/v1/products/:id
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	updated, err := h.service.UpdateProduct(productID, &req, middleware.CurrentActor(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

// DELETE /api/v1/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	if err := h.service.DeleteProduct(productID, middleware.CurrentActor(c)); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GetProducts lists products.
// Query params: search, category, low_stock=true, active=true
// GET /api/v1/products
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(repository.ProductFilter{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		LowStockOnly: c.QueryBool("low_stock"),
		ActiveOnly:   c.QueryBool("active"),
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	product, err := h.service.GetProduct(productID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(product)
}

// AdjustStock applies a manual restock or correction
// POST /api/v1/products/:id/adjust-stock
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	productID, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var req service.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	adj, err := h.service.AdjustStock(c.UserContext(), productID, &req, middleware.CurrentActor(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Stock adjusted",
		"data":      adj.Product,
		"stock_log": adj.Entry,
		"low_stock": adj.Product.Quantity <= adj.Product.LowStockThreshold,
	})
}

// GET /api/v1/products/:id/stock-logs?limit=100
func (h *InventoryHandler) GetStockLogs(c *fiber.Ctx) error {
	productID, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	logs, err := h.service.GetStockLogs(productID, queryInt(c, "limit", defaultStockLogLimit))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if logs == nil {
		logs = []model.StockLog{}
	}
	return c.JSON(logs)
}
