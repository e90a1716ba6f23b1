package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a recorded sale. Total is fixed at creation and never recomputed.
type Transaction struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	BuyerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Buyer     *Buyer          `json:"buyer,omitempty"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Quantity  int             `gorm:"not null;check:chk_transactions_quantity,quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`
	Note      string          `gorm:"type:text" json:"note,omitempty"`
}

// MoneyScale is the number of decimal places stored for prices and totals.
const MoneyScale = 2

// IsWholeCents reports whether d fits a money column without rounding.
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

// ComputeTotal returns unit price * quantity.
func ComputeTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
