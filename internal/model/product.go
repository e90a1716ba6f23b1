package model

import "github.com/shopspring/decimal"

// DefaultLowStockThreshold is used when neither the request nor the settings provide one.
const DefaultLowStockThreshold = 10

type Product struct {
	BaseModel
	SKU               string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name              string          `gorm:"type:varchar(255);not null" json:"name"`
	Category          string          `gorm:"type:varchar(100)" json:"category"`
	Unit              string          `gorm:"type:varchar(20)" json:"unit"`
	Price             decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Quantity          int             `gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0" json:"quantity"`
	LowStockThreshold int             `gorm:"not null;default:10" json:"low_stock_threshold"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`

	// Owner
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
}

// IsLowStock reports whether the current quantity is at or below the threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}
