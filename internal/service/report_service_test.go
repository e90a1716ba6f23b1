package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
)

type sale struct {
	userID uuid.UUID
	at     time.Time
	total  decimal.Decimal
}

type fakeReportRepo struct {
	sales        []sale
	products     repository.ProductStats
	lowStock     []model.LowStockItem
	salesPeople  int64
	movement     []repository.StockMovementData
	movementFrom time.Time
	movementTo   time.Time
	err          error
}

func (f *fakeReportRepo) TransactionTotals(_ context.Context, userID *uuid.UUID, from, to *time.Time) (repository.TransactionTotals, error) {
	totals := repository.TransactionTotals{Revenue: decimal.Zero}
	if f.err != nil {
		return totals, f.err
	}
	for _, s := range f.sales {
		if userID != nil && s.userID != *userID {
			continue
		}
		if from != nil && s.at.Before(*from) {
			continue
		}
		if to != nil && !s.at.Before(*to) {
			continue
		}
		totals.Count++
		totals.Revenue = totals.Revenue.Add(s.total)
	}
	return totals, nil
}

func (f *fakeReportRepo) ProductStats(context.Context) (repository.ProductStats, error) {
	return f.products, f.err
}

func (f *fakeReportRepo) LowStockProducts(_ context.Context, limit int) ([]model.LowStockItem, error) {
	if len(f.lowStock) > limit {
		return f.lowStock[:limit], f.err
	}
	return f.lowStock, f.err
}

func (f *fakeReportRepo) CountActiveUsersByRole(_ context.Context, roleCode string) (int64, error) {
	if roleCode != model.RoleSales {
		return 0, nil
	}
	return f.salesPeople, f.err
}

func (f *fakeReportRepo) StockMovement(_ context.Context, from, to time.Time, _ string) ([]repository.StockMovementData, error) {
	f.movementFrom, f.movementTo = from, to
	return f.movement, f.err
}

type staticSettings struct{ settings model.SystemSettings }

func (s staticSettings) Current() (*model.SystemSettings, error) {
	settings := s.settings
	return &settings, nil
}

func newTestReportService(t *testing.T, repo *fakeReportRepo, now time.Time) *reportService {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Accra")
	require.NoError(t, err)
	svc := NewReportService(repo, staticSettings{model.DefaultSettings()}, loc).(*reportService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestReportSummary_Windows(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	startToday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := &fakeReportRepo{
		sales: []sale{
			{alice, now.Add(-time.Hour), decimal.RequireFromString("10.00")},             // today
			{bob, startToday, decimal.RequireFromString("5.50")},                         // today, first instant
			{alice, startToday.Add(-time.Second), decimal.RequireFromString("2.00")},     // yesterday
			{alice, startToday.AddDate(0, 0, -6), decimal.RequireFromString("3.00")},     // first day of the week
			{alice, startToday.AddDate(0, 0, -7), decimal.RequireFromString("100.00")},   // older than a week
			{bob, startToday.AddDate(0, -2, 0), decimal.RequireFromString("40.00")},      // long ago
		},
		products:    repository.ProductStats{TotalProducts: 12, LowStockCount: 3, TotalValuation: decimal.RequireFromString("1234.50")},
		lowStock:    []model.LowStockItem{{SKU: "MILK-1L", Quantity: 0, LowStockThreshold: 5}},
		salesPeople: 4,
	}
	svc := newTestReportService(t, repo, now)

	summary, err := svc.Summary(context.Background(), Scope{All: true}, Window{})
	require.NoError(t, err)

	assert.Nil(t, summary.UserID)
	assert.Equal(t, int64(6), summary.TotalTransactions)
	assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("160.50")))
	assert.Equal(t, int64(2), summary.TodayTransactions)
	assert.True(t, summary.TodayRevenue.Equal(decimal.RequireFromString("15.50")))
	assert.Equal(t, int64(4), summary.WeekTransactions)
	assert.True(t, summary.WeekRevenue.Equal(decimal.RequireFromString("20.50")))
	assert.Equal(t, int64(3), summary.LowStockProducts)
	assert.True(t, summary.StockValuation.Equal(decimal.RequireFromString("1234.5")))
	require.Len(t, summary.LowStockItems, 1)
	assert.Equal(t, "MILK-1L", summary.LowStockItems[0].SKU)
	assert.Equal(t, int64(12), summary.TotalProducts)
	assert.Equal(t, int64(4), summary.ActiveSalesPersonnel)
	assert.Equal(t, "GH₵", summary.Currency)
	assert.Equal(t, "GHS", summary.CurrencyCode)

	own, err := svc.Summary(context.Background(), Scope{UserID: bob}, Window{})
	require.NoError(t, err)
	require.NotNil(t, own.UserID)
	assert.Equal(t, bob, *own.UserID)
	assert.Equal(t, int64(2), own.TotalTransactions)
	assert.Equal(t, int64(1), own.TodayTransactions)
	assert.True(t, own.TodayRevenue.Equal(decimal.RequireFromString("5.50")))
}

func TestReportSummary_DateWindow(t *testing.T) {
	alice := uuid.New()
	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{sales: []sale{
		{alice, march.Add(-time.Minute), decimal.RequireFromString("1")},
		{alice, march, decimal.RequireFromString("2")},
		{alice, april.Add(-time.Minute), decimal.RequireFromString("3")},
		{alice, april, decimal.RequireFromString("4")},
	}}
	svc := newTestReportService(t, repo, april.AddDate(0, 0, 10))

	summary, err := svc.Summary(context.Background(), Scope{All: true}, Window{From: &march, To: &april})
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalTransactions)
	assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("5")))
	assert.Equal(t, &march, summary.From)
	assert.Zero(t, summary.TodayTransactions)
}

func TestReportSummary_EmptyIsZero(t *testing.T) {
	svc := newTestReportService(t, &fakeReportRepo{}, time.Now())

	summary, err := svc.Summary(context.Background(), Scope{All: true}, Window{})
	require.NoError(t, err)
	assert.Zero(t, summary.TotalTransactions)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.True(t, summary.TodayRevenue.IsZero())
	assert.True(t, summary.WeekRevenue.IsZero())
	assert.True(t, summary.StockValuation.IsZero())
	assert.Zero(t, summary.TotalProducts)
}

func TestReportSummary_RepositoryError(t *testing.T) {
	svc := newTestReportService(t, &fakeReportRepo{err: errors.New("db down")}, time.Now())

	_, err := svc.Summary(context.Background(), Scope{All: true}, Window{})
	assert.ErrorContains(t, err, "db down")
}

func TestStockMovement_FillsMissingDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{movement: []repository.StockMovementData{
		{Date: "2026-03-05", Inbound: 10},
		{Date: "2026-03-10", Outbound: 4},
	}}
	svc := newTestReportService(t, repo, now)

	series, err := svc.StockMovement(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, series, 7)

	assert.Equal(t, "2026-03-04", series[0].Date)
	assert.Equal(t, 10, series[1].Inbound)
	assert.Equal(t, "2026-03-10", series[6].Date)
	assert.Equal(t, 4, series[6].Outbound)
	assert.Zero(t, series[3].Inbound+series[3].Outbound)

	assert.True(t, repo.movementFrom.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, svc.loc)))
	assert.True(t, repo.movementTo.Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, svc.loc)))

	series, err = svc.StockMovement(context.Background(), 1000)
	require.NoError(t, err)
	assert.Len(t, series, maxMovementDays)
}
