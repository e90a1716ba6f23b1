package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-backoffice/internal/model"
)

// SaleRequest describes a sale to record. A nil UnitPrice captures the
// product's current price.
type SaleRequest struct {
	ProductID uuid.UUID
	BuyerID   uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
	Note      string
	Actor     Actor
}

type SaleResult struct {
	Transaction *model.Transaction
	Adjustment  *Adjustment
}

// AdjustRequest is a manual restock or correction.
type AdjustRequest struct {
	ProductID uuid.UUID
	Delta     int
	Direction model.StockDirection
	Note      string
	Actor     Actor
}

// Recorder owns the atomic boundaries around the ledger: sales, manual
// adjustments and product intake.
type Recorder struct {
	store    Store
	ledger   *Ledger
	notifier *Notifier
	logger   *zap.Logger
}

func NewRecorder(store Store, ledger *Ledger, notifier *Notifier, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, ledger: ledger, notifier: notifier, logger: logger}
}

// RecordSale checks availability under the product row lock, writes the
// transaction, decrements stock through the ledger and commits all of it
// together. Low-stock alerts are delivered after commit.
func (r *Recorder) RecordSale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidSale)
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", ErrInvalidSale)
	}
	if req.UnitPrice != nil && !model.IsWholeCents(*req.UnitPrice) {
		return nil, fmt.Errorf("%w: unit price %s has more than %d decimal places",
			ErrInvalidSale, req.UnitPrice.String(), model.MoneyScale)
	}

	var result SaleResult
	err := r.store.Atomic(ctx, func(tx Tx) error {
		buyer, err := tx.GetBuyer(ctx, req.BuyerID)
		if err != nil {
			return err
		}
		if !buyer.IsActive {
			return fmt.Errorf("buyer %s is inactive: %w", buyer.ID, ErrNotFound)
		}

		product, err := tx.LockProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return fmt.Errorf("product %s is inactive: %w", product.SKU, ErrNotFound)
		}
		if req.Quantity > product.Quantity {
			return fmt.Errorf("%w: requested %d of '%s', %d available",
				ErrInsufficientStock, req.Quantity, product.Name, product.Quantity)
		}

		unitPrice := product.Price
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		unitPrice = unitPrice.Round(model.MoneyScale)

		txn := &model.Transaction{
			ProductID: product.ID,
			BuyerID:   buyer.ID,
			UserID:    req.Actor.ID,
			Quantity:  req.Quantity,
			UnitPrice: unitPrice,
			Total:     model.ComputeTotal(unitPrice, req.Quantity),
			Note:      req.Note,
		}
		txn.CreatedBy = req.Actor.Ref()
		txn.UpdatedBy = req.Actor.Ref()
		if err := tx.CreateTransaction(ctx, txn); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		adj, err := r.ledger.Adjust(ctx, tx, product, -req.Quantity, model.StockDecrease,
			req.Actor, fmt.Sprintf("Sale to %s", buyer.Name))
		if err != nil {
			return err
		}

		txn.Product = adj.Product
		txn.Buyer = buyer
		result = SaleResult{Transaction: txn, Adjustment: adj}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	r.notifier.Dispatch(result.Adjustment.Notification)
	r.logger.Info("sale recorded",
		zap.String("transaction_id", result.Transaction.ID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity),
		zap.String("total", result.Transaction.Total.StringFixed(2)),
		zap.Int("remaining", result.Adjustment.Product.Quantity),
		zap.String("actor", req.Actor.Ref()))

	return &result, nil
}

// AdjustStock applies a manual change. Unlike the bare ledger it refuses to
// take the quantity below zero.
func (r *Recorder) AdjustStock(ctx context.Context, req AdjustRequest) (*Adjustment, error) {
	if err := ValidateAdjustment(req.Delta, req.Direction); err != nil {
		return nil, err
	}

	var adj *Adjustment
	err := r.store.Atomic(ctx, func(tx Tx) error {
		product, err := tx.LockProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if product.Quantity+req.Delta < 0 {
			return fmt.Errorf("%w: cannot remove %d of '%s', %d available",
				ErrInsufficientStock, -req.Delta, product.Name, product.Quantity)
		}

		adj, err = r.ledger.Adjust(ctx, tx, product, req.Delta, req.Direction, req.Actor, req.Note)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}

	r.notifier.Dispatch(adj.Notification)
	r.logger.Info("stock adjusted",
		zap.String("product_id", req.ProductID.String()),
		zap.Int("delta", req.Delta),
		zap.Int("quantity", adj.Product.Quantity),
		zap.String("actor", req.Actor.Ref()))

	return adj, nil
}

// CreateProduct inserts product with zero stock and books its initial
// quantity through the ledger so the opening balance is logged too.
// On success product reflects the persisted state.
func (r *Recorder) CreateProduct(ctx context.Context, product *model.Product, actor Actor) (*Adjustment, error) {
	initial := product.Quantity
	if initial < 0 {
		return nil, fmt.Errorf("%w: initial quantity %d is negative", ErrInvalidAdjustment, initial)
	}

	var adj *Adjustment
	err := r.store.Atomic(ctx, func(tx Tx) error {
		product.Quantity = 0
		product.CreatedBy = actor.Ref()
		product.UpdatedBy = actor.Ref()
		if err := tx.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("create product %s: %w", product.SKU, err)
		}
		if initial == 0 {
			return nil
		}

		var err error
		adj, err = r.ledger.Adjust(ctx, tx, product, initial, model.StockIncrease, actor, "Initial stock")
		return err
	})
	if err != nil {
		product.Quantity = initial
		return nil, classify(err)
	}

	if adj != nil {
		product.Quantity = adj.Product.Quantity
		r.notifier.Dispatch(adj.Notification)
	}
	return adj, nil
}
