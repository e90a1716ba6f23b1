package stock

import (
	"context"
	"fmt"
	"time"

	"go-backoffice/internal/model"
)

// Adjustment is the outcome of one ledger application.
type Adjustment struct {
	Product      *model.Product
	Entry        *model.StockLog
	Notification *model.Notification // nil unless the product ended at or below threshold
}

// Ledger is the only code path that changes a product's quantity.
type Ledger struct {
	notifier *Notifier
	now      func() time.Time
}

func NewLedger(notifier *Notifier) *Ledger {
	return &Ledger{notifier: notifier, now: time.Now}
}

// ValidateAdjustment rejects a zero delta or a direction that disagrees with its sign.
func ValidateAdjustment(delta int, direction model.StockDirection) error {
	switch {
	case delta == 0:
		return fmt.Errorf("%w: delta must not be zero", ErrInvalidAdjustment)
	case direction == model.StockIncrease && delta < 0:
		return fmt.Errorf("%w: increase with negative delta %d", ErrInvalidAdjustment, delta)
	case direction == model.StockDecrease && delta > 0:
		return fmt.Errorf("%w: decrease with positive delta %d", ErrInvalidAdjustment, delta)
	case direction != model.StockIncrease && direction != model.StockDecrease:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidAdjustment, direction)
	}
	return nil
}

// Adjust applies delta to product inside tx and appends the matching log entry.
// It does not check that the result stays non-negative; callers holding the
// row lock are responsible for that.
func (l *Ledger) Adjust(ctx context.Context, tx Tx, product *model.Product, delta int,
	direction model.StockDirection, actor Actor, note string) (*Adjustment, error) {

	if err := ValidateAdjustment(delta, direction); err != nil {
		return nil, err
	}

	updated := *product
	updated.Quantity = product.Quantity + delta
	updated.UpdatedBy = actor.Ref()

	if err := tx.SetProductQuantity(ctx, product.ID, updated.Quantity, actor.Ref()); err != nil {
		return nil, fmt.Errorf("update quantity of %s: %w", product.SKU, err)
	}

	entry := &model.StockLog{
		ProductID: product.ID,
		Delta:     delta,
		Direction: direction,
		Note:      note,
		UserID:    actor.userID(),
		CreatedAt: l.now(),
	}
	if err := tx.AppendStockLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("append stock log for %s: %w", product.SKU, err)
	}

	notification, err := l.notifier.CheckAndNotify(ctx, tx, &updated, actor)
	if err != nil {
		return nil, err
	}

	return &Adjustment{Product: &updated, Entry: entry, Notification: notification}, nil
}
