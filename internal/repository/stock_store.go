package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-backoffice/internal/model"
	"go-backoffice/internal/stock"
)

type stockStore struct {
	db *gorm.DB
}

// NewStockStore runs stock units of work as postgres transactions.
func NewStockStore(db *gorm.DB) stock.Store {
	return &stockStore{db: db}
}

func (s *stockStore) Atomic(ctx context.Context, fn func(tx stock.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&stockTx{db: tx})
	})
}

type stockTx struct {
	db *gorm.DB
}

func notFound(err error, what string, id uuid.UUID) error {
	if IsNotFound(err) {
		return fmt.Errorf("%s %s: %w", what, id, stock.ErrNotFound)
	}
	return err
}

func (t *stockTx) LockProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	return &product, nil
}

func (t *stockTx) GetBuyer(ctx context.Context, id uuid.UUID) (*model.Buyer, error) {
	var buyer model.Buyer
	if err := t.db.WithContext(ctx).First(&buyer, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "buyer", id)
	}
	return &buyer, nil
}

func (t *stockTx) CreateProduct(ctx context.Context, product *model.Product) error {
	return translate(t.db.WithContext(ctx).Create(product).Error)
}

func (t *stockTx) SetProductQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedBy string) error {
	res := t.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, stock.ErrNotFound)
	}
	return nil
}

func (t *stockTx) AppendStockLog(ctx context.Context, entry *model.StockLog) error {
	return t.db.WithContext(ctx).Create(entry).Error
}

func (t *stockTx) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	return t.db.WithContext(ctx).Omit(clause.Associations).Create(txn).Error
}

func (t *stockTx) CreateNotification(ctx context.Context, n *model.Notification) error {
	return t.db.WithContext(ctx).Create(n).Error
}
