package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"
)

type SaleHandler struct {
	service service.SaleService
	loc     *time.Location
	logger  *zap.Logger
}

// NewSaleHandler reads bare dates in query filters in loc.
func NewSaleHandler(s service.SaleService, loc *time.Location, logger *zap.Logger) *SaleHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleHandler{service: s, loc: loc, logger: logger}
}

// SaleResponse is the body returned for a recorded sale.
type SaleResponse struct {
	ID        uuid.UUID       `json:"id"`
	Product   *model.Product  `json:"product"`
	Buyer     *model.Buyer    `json:"buyer"`
	UserID    uuid.UUID       `json:"user_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func toSaleResponse(t *model.Transaction) SaleResponse {
	return SaleResponse{
		ID:        t.ID,
		Product:   t.Product,
		Buyer:     t.Buyer,
		UserID:    t.UserID,
		Quantity:  t.Quantity,
		UnitPrice: t.UnitPrice,
		Total:     t.Total,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
	}
}

// CreateTransaction records a sale
// POST /api/v1/transactions
func (h *SaleHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	txn, err := h.service.RecordSale(c.UserContext(), &req, middleware.CurrentActor(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(txn))
}

// GetTransactions lists sales visible to the caller.
// Query params: product_id, buyer_id, user_id, date_from, date_to (YYYY-MM-DD), limit
// GET /api/v1/transactions
func (h *SaleHandler) GetTransactions(c *fiber.Ctx) error {
	var (
		filter repository.TransactionFilter
		err    error
	)
	if filter.ProductID, err = queryUUID(c, "product_id"); err != nil {
		return badRequest(c, err.Error())
	}
	if filter.BuyerID, err = queryUUID(c, "buyer_id"); err != nil {
		return badRequest(c, err.Error())
	}
	if filter.UserID, err = queryUUID(c, "user_id"); err != nil {
		return badRequest(c, err.Error())
	}
	if filter.From, err = queryDate(c, "date_from", h.loc, false); err != nil {
		return badRequest(c, err.Error())
	}
	if filter.To, err = queryDate(c, "date_to", h.loc, true); err != nil {
		return badRequest(c, err.Error())
	}
	filter.Limit = queryInt(c, "limit", 0)

	scope := middleware.CurrentScope(c)
	if scope.All && filter.UserID != nil {
		// Narrow an unrestricted scope to the requested salesperson.
		scope = service.Scope{UserID: *filter.UserID}
	}

	transactions, err := h.service.ListTransactions(scope, filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	out := make([]SaleResponse, len(transactions))
	for i := range transactions {
		out[i] = toSaleResponse(&transactions[i])
	}
	return c.JSON(out)
}

// GET /api/v1/transactions/:id
func (h *SaleHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}

	txn, err := h.service.GetTransaction(middleware.CurrentScope(c), txID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(toSaleResponse(txn))
}
