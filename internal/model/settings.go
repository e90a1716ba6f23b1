package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID is the primary key of the single settings row.
const SettingsID = 1

// SystemSettings holds tenant-wide values. There is exactly one row.
type SystemSettings struct {
	ID                uint            `gorm:"primaryKey" json:"-"`
	Currency          string          `gorm:"type:varchar(10);not null" json:"currency"`
	CurrencyCode      string          `gorm:"type:varchar(10);not null" json:"currency_code"`
	TaxRate           decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tax_rate"`
	LowStockThreshold int             `gorm:"not null" json:"low_stock_threshold"`
	UpdatedAt         time.Time       `json:"updated_at"`
	UpdatedBy         string          `json:"updated_by"`
}

// DefaultSettings is what a fresh install reports before any update.
func DefaultSettings() SystemSettings {
	return SystemSettings{
		ID:                SettingsID,
		Currency:          "GH₵",
		CurrencyCode:      "GHS",
		TaxRate:           decimal.RequireFromString("12.5"),
		LowStockThreshold: DefaultLowStockThreshold,
	}
}
