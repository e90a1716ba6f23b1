package repository

import (
	"time"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows listings. A nil UserID means every salesperson.
type TransactionFilter struct {
	UserID    *uuid.UUID
	ProductID *uuid.UUID
	BuyerID   *uuid.UUID
	From      *time.Time
	To        *time.Time
	Limit     int
}

type TransactionRepository interface {
	FindAll(filter TransactionFilter) ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll(filter TransactionFilter) ([]model.Transaction, error) {
	var transactions []model.Transaction
	q := r.db.Preload("Product", withDeleted).Preload("Buyer", withDeleted)
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.BuyerID != nil {
		q = q.Where("buyer_id = ?", *filter.BuyerID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	err := q.Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Product", withDeleted).Preload("Buyer", withDeleted).
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// withDeleted keeps soft-deleted products and buyers visible on historic sales.
func withDeleted(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
