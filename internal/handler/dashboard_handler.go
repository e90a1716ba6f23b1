package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/service"
)

type DashboardHandler struct {
	service service.ReportService
	loc     *time.Location
	logger  *zap.Logger
}

func NewDashboardHandler(s service.ReportService, loc *time.Location, logger *zap.Logger) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{service: s, loc: loc, logger: logger}
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7, at most 90)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	data, err := h.service.StockMovement(c.UserContext(), queryInt(c, "days", 0))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"period": len(data),
		"data":   data,
	})
}

// GetSummary returns sales and catalogue figures. Users without
// transaction:view_all only see their own sales.
// Query params: date_from, date_to (YYYY-MM-DD) bound the overall totals
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	var (
		window service.Window
		err    error
	)
	if window.From, err = queryDate(c, "date_from", h.loc, false); err != nil {
		return badRequest(c, err.Error())
	}
	if window.To, err = queryDate(c, "date_to", h.loc, true); err != nil {
		return badRequest(c, err.Error())
	}

	summary, err := h.service.Summary(c.UserContext(), middleware.CurrentScope(c), window)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(summary)
}
