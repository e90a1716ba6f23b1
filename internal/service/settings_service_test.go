package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-backoffice/internal/model"
	"go-backoffice/internal/stock"
)

func TestSettingsService_UpdateAppliesPresentFields(t *testing.T) {
	repo := &fakeSettingsRepo{settings: model.DefaultSettings()}
	svc := NewSettingsService(repo, zaptest.NewLogger(t))
	actor := stock.Actor{ID: uuid.New()}

	code := "usd"
	rate := decimal.RequireFromString("15")
	got, err := svc.Update(&UpdateSettingsRequest{CurrencyCode: &code, TaxRate: &rate}, actor)
	require.NoError(t, err)

	assert.Equal(t, "USD", got.CurrencyCode)
	assert.Equal(t, "GH₵", got.Currency)
	assert.True(t, got.TaxRate.Equal(rate))
	assert.Equal(t, model.DefaultLowStockThreshold, got.LowStockThreshold)
	assert.Equal(t, actor.Ref(), got.UpdatedBy)
	assert.Equal(t, 1, repo.saves)

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, "USD", current.CurrencyCode)
}

func TestSettingsService_UpdateRejectsInvalid(t *testing.T) {
	short := "GH"
	negative := decimal.NewFromInt(-1)
	tooHigh := decimal.RequireFromString("100.5")
	subCent := decimal.RequireFromString("12.345")
	threshold := -1

	cases := map[string]*UpdateSettingsRequest{
		"short currency code": {CurrencyCode: &short},
		"negative tax rate":   {TaxRate: &negative},
		"tax rate over 100":   {TaxRate: &tooHigh},
		"sub-cent tax rate":   {TaxRate: &subCent},
		"negative threshold":  {LowStockThreshold: &threshold},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &fakeSettingsRepo{settings: model.DefaultSettings()}
			svc := NewSettingsService(repo, zaptest.NewLogger(t))

			_, err := svc.Update(req, stock.Actor{})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, repo.saves)
		})
	}
}

func TestSettingsService_SaveError(t *testing.T) {
	repo := &fakeSettingsRepo{settings: model.DefaultSettings(), saveErr: assert.AnError}
	svc := NewSettingsService(repo, zaptest.NewLogger(t))

	threshold := 3
	_, err := svc.Update(&UpdateSettingsRequest{LowStockThreshold: &threshold}, stock.Actor{})
	assert.ErrorIs(t, err, assert.AnError)

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLowStockThreshold, current.LowStockThreshold)
}
