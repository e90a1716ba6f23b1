package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockItem is a product at or below its low-stock threshold.
type LowStockItem struct {
	ID                uuid.UUID `json:"id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
}

// SalesSummary is the dashboard view of sales and stock for one scope.
// The Total fields cover From..To when a window was requested.
type SalesSummary struct {
	UserID               *uuid.UUID      `json:"user_id,omitempty"` // nil for the global scope
	From                 *time.Time      `json:"from,omitempty"`
	To                   *time.Time      `json:"to,omitempty"`
	TotalTransactions    int64           `json:"total_transactions"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TodayTransactions    int64           `json:"today_transactions"`
	TodayRevenue         decimal.Decimal `json:"today_revenue"`
	WeekTransactions     int64           `json:"week_transactions"`
	WeekRevenue          decimal.Decimal `json:"week_revenue"`
	LowStockProducts     int64           `json:"low_stock_products"`
	LowStockItems        []LowStockItem  `json:"low_stock_items"`
	TotalProducts        int64           `json:"total_products"`
	StockValuation       decimal.Decimal `json:"stock_valuation"` // sum of quantity * price over active products
	ActiveSalesPersonnel int64           `json:"active_sales_personnel"`
	Currency             string          `json:"currency"`
	CurrencyCode         string          `json:"currency_code"`
	GeneratedAt          time.Time       `json:"generated_at"`
}
