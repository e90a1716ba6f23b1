package mongodb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"go-backoffice/internal/model"
)

func TestDailySummaryDocument_EncodesRevenueAsFixedString(t *testing.T) {
	at := time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC)
	doc := newDailySummaryDocument("2026-03-04", model.SalesSummary{
		TotalTransactions: 3,
		TotalRevenue:      decimal.RequireFromString("59.9"),
		TodayRevenue:      decimal.Zero,
		WeekRevenue:       decimal.RequireFromString("12"),
		CurrencyCode:      "GHS",
		GeneratedAt:       at,
	})

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded bson.M
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, "2026-03-04", decoded["day"])
	assert.Equal(t, "59.90", decoded["total_revenue"])
	assert.Equal(t, "0.00", decoded["today_revenue"])
	assert.Equal(t, "12.00", decoded["week_revenue"])
	assert.Equal(t, int64(3), decoded["total_transactions"])
}
