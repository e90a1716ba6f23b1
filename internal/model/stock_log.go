package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockDirection string

const (
	StockIncrease StockDirection = "increase"
	StockDecrease StockDirection = "decrease"
)

// StockLog is the append-only audit trail of every product quantity change.
// It deliberately has no UpdatedAt/DeletedAt: rows are never touched again.
type StockLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Delta     int            `gorm:"not null" json:"delta"`
	Direction StockDirection `gorm:"type:varchar(10);not null" json:"direction"`
	Note      string         `gorm:"type:text" json:"note"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (l *StockLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
