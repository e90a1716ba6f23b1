package repository

import (
	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLogRepository is read-only: entries are written by the stock ledger.
type StockLogRepository interface {
	FindByProduct(productID uuid.UUID, limit int) ([]model.StockLog, error)
}

type stockLogRepo struct {
	db *gorm.DB
}

func NewStockLogRepo(db *gorm.DB) StockLogRepository {
	return &stockLogRepo{db}
}

func (r *stockLogRepo) FindByProduct(productID uuid.UUID, limit int) ([]model.StockLog, error) {
	var logs []model.StockLog
	q := r.db.Where("product_id = ?", productID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}
