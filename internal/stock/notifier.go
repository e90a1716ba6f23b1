package stock

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-backoffice/internal/model"
)

const deliveryTimeout = 10 * time.Second

// Channel is an out-of-band delivery mechanism (WebSocket push, SMS).
// Delivery is best effort.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, n *model.Notification) error
}

// Notifier raises low-stock warnings. It is level-triggered: every adjustment
// leaving a product at or below its threshold produces a new notification.
type Notifier struct {
	channels []Channel
	logger   *zap.Logger
}

func NewNotifier(logger *zap.Logger, channels ...Channel) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{channels: channels, logger: logger}
}

// CheckAndNotify persists a warning for actor when product is at or below threshold.
// Adjustments made by the system actor have nobody to notify and return nil.
func (n *Notifier) CheckAndNotify(ctx context.Context, tx Tx, product *model.Product, actor Actor) (*model.Notification, error) {
	if !product.IsLowStock() || actor.userID() == nil {
		return nil, nil
	}

	productID := product.ID
	notification := &model.Notification{
		UserID:    actor.ID,
		ProductID: &productID,
		Message:   fmt.Sprintf("Warning: '%s' stock is low (%d left).", product.Name, product.Quantity),
		Type:      model.NotificationWarning,
	}
	notification.CreatedBy = actor.Ref()
	notification.UpdatedBy = actor.Ref()

	if err := tx.CreateNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("create low stock notification: %w", err)
	}
	return notification, nil
}

// Dispatch hands committed notifications to every channel in the background.
// Failures are logged and never reach the caller.
func (n *Notifier) Dispatch(notifications ...*model.Notification) {
	for _, notification := range notifications {
		if notification == nil {
			continue
		}
		for _, ch := range n.channels {
			go n.deliver(ch, notification)
		}
	}
}

func (n *Notifier) deliver(ch Channel, notification *model.Notification) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("notification channel panicked",
				zap.String("channel", ch.Name()), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := ch.Deliver(ctx, notification); err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("channel", ch.Name()),
			zap.String("notification_id", notification.ID.String()),
			zap.Error(err))
		return
	}
	n.logger.Debug("notification delivered",
		zap.String("channel", ch.Name()),
		zap.String("notification_id", notification.ID.String()))
}
