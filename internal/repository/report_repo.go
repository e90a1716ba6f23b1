package repository

import (
	"context"
	"time"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionTotals is the count and revenue of a set of sales.
type TransactionTotals struct {
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ProductStats is the catalogue overview used by the dashboard.
type ProductStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

// StockMovementData is one day of the stock movement chart.
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type ReportRepository interface {
	TransactionTotals(ctx context.Context, userID *uuid.UUID, from, to *time.Time) (TransactionTotals, error)
	ProductStats(ctx context.Context) (ProductStats, error)
	LowStockProducts(ctx context.Context, limit int) ([]model.LowStockItem, error)
	CountActiveUsersByRole(ctx context.Context, roleCode string) (int64, error)
	StockMovement(ctx context.Context, from, to time.Time, timezone string) ([]StockMovementData, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

// TransactionTotals sums sales in [from, to). Nil bounds are open.
func (r *reportRepo) TransactionTotals(ctx context.Context, userID *uuid.UUID, from, to *time.Time) (TransactionTotals, error) {
	var totals TransactionTotals
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", *to)
	}
	err := q.Scan(&totals).Error
	return totals, err
}

func (r *reportRepo) ProductStats(ctx context.Context) (ProductStats, error) {
	var stats ProductStats
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select(`
			COUNT(*) AS total_products,
			COUNT(*) FILTER (WHERE quantity <= low_stock_threshold) AS low_stock_count,
			COALESCE(SUM(quantity * price), 0) AS total_valuation
		`).
		Where("is_active = ?", true).
		Scan(&stats).Error
	return stats, err
}

// LowStockProducts lists active products at or below threshold, emptiest first.
func (r *reportRepo) LowStockProducts(ctx context.Context, limit int) ([]model.LowStockItem, error) {
	items := []model.LowStockItem{}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("id, sku, name, quantity, low_stock_threshold").
		Where("is_active = ? AND quantity <= low_stock_threshold", true).
		Order("quantity ASC, name ASC").
		Limit(limit).
		Scan(&items).Error
	return items, err
}

func (r *reportRepo) CountActiveUsersByRole(ctx context.Context, roleCode string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.code = ? AND users.is_active = ?", roleCode, true).
		Count(&count).Error
	return count, err
}

// StockMovement aggregates ledger entries per local calendar day in [from, to).
func (r *reportRepo) StockMovement(ctx context.Context, from, to time.Time, timezone string) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.WithContext(ctx).Model(&model.StockLog{}).
		Select(`
			TO_CHAR(created_at AT TIME ZONE ?, 'YYYY-MM-DD') AS date,
			COALESCE(SUM(CASE WHEN delta > 0 THEN delta ELSE 0 END), 0) AS inbound,
			COALESCE(SUM(CASE WHEN delta < 0 THEN -delta ELSE 0 END), 0) AS outbound
		`, timezone).
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("1").
		Order("1 ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}
