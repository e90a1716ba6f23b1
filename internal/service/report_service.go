package service

import (
	"context"
	"fmt"
	"time"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
)

const (
	defaultMovementDays = 7
	maxMovementDays     = 90
	lowStockListLimit   = 50
)

// Window optionally bounds the overall totals of a summary to [From, To).
type Window struct {
	From *time.Time
	To   *time.Time
}

type ReportService interface {
	Summary(ctx context.Context, scope Scope, window Window) (*model.SalesSummary, error)
	StockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error)
}

type reportService struct {
	repo     repository.ReportRepository
	settings SettingsProvider
	loc      *time.Location
	now      func() time.Time
}

// NewReportService computes report windows in loc.
func NewReportService(repo repository.ReportRepository, settings SettingsProvider, loc *time.Location) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{repo: repo, settings: settings, loc: loc, now: time.Now}
}

func (s *reportService) startOfToday() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// Summary aggregates sales visible to scope. "Week" is the seven calendar
// days ending today. An empty sales history yields zeros.
func (s *reportService) Summary(ctx context.Context, scope Scope, window Window) (*model.SalesSummary, error) {
	userID := scope.userFilter()
	today := s.startOfToday()
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -6)

	total, err := s.repo.TransactionTotals(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("total sales: %w", err)
	}
	todays, err := s.repo.TransactionTotals(ctx, userID, &today, &tomorrow)
	if err != nil {
		return nil, fmt.Errorf("today's sales: %w", err)
	}
	week, err := s.repo.TransactionTotals(ctx, userID, &weekStart, &tomorrow)
	if err != nil {
		return nil, fmt.Errorf("weekly sales: %w", err)
	}

	products, err := s.repo.ProductStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	lowStock, err := s.repo.LowStockProducts(ctx, lowStockListLimit)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	sales, err := s.repo.CountActiveUsersByRole(ctx, model.RoleSales)
	if err != nil {
		return nil, fmt.Errorf("active sales personnel: %w", err)
	}
	settings, err := s.settings.Current()
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	return &model.SalesSummary{
		UserID:               userID,
		From:                 window.From,
		To:                   window.To,
		TotalTransactions:    total.Count,
		TotalRevenue:         total.Revenue,
		TodayTransactions:    todays.Count,
		TodayRevenue:         todays.Revenue,
		WeekTransactions:     week.Count,
		WeekRevenue:          week.Revenue,
		LowStockProducts:     products.LowStockCount,
		LowStockItems:        lowStock,
		TotalProducts:        products.TotalProducts,
		StockValuation:       products.TotalValuation,
		ActiveSalesPersonnel: sales,
		Currency:             settings.Currency,
		CurrencyCode:         settings.CurrencyCode,
		GeneratedAt:          s.now(),
	}, nil
}

// StockMovement returns one entry per local day, oldest first, including days without movement.
func (s *reportService) StockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error) {
	if days <= 0 {
		days = defaultMovementDays
	}
	if days > maxMovementDays {
		days = maxMovementDays
	}

	today := s.startOfToday()
	from := today.AddDate(0, 0, -(days - 1))
	to := today.AddDate(0, 0, 1)

	rows, err := s.repo.StockMovement(ctx, from, to, s.loc.String())
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]repository.StockMovementData, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	series := make([]repository.StockMovementData, 0, days)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		entry, ok := byDate[key]
		if !ok {
			entry = repository.StockMovementData{Date: key}
		}
		series = append(series, entry)
	}
	return series, nil
}
