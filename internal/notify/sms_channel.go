package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-backoffice/internal/model"
	"go-backoffice/pkg/clients/sms"
)

// UserLookup resolves the recipient of a notification.
type UserLookup interface {
	FindByID(id uuid.UUID) (*model.User, error)
}

// SMSChannel texts a notification to its recipient's phone number.
// Users without a phone number are skipped.
type SMSChannel struct {
	sender sms.Sender
	users  UserLookup
	logger *zap.Logger
}

func NewSMSChannel(sender sms.Sender, users UserLookup, logger *zap.Logger) *SMSChannel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMSChannel{sender: sender, users: users, logger: logger}
}

func (c *SMSChannel) Name() string { return "sms" }

func (c *SMSChannel) Deliver(ctx context.Context, n *model.Notification) error {
	user, err := c.users.FindByID(n.UserID)
	if err != nil {
		return fmt.Errorf("lookup recipient %s: %w", n.UserID, err)
	}
	if user.PhoneNumber == "" {
		c.logger.Debug("sms skipped, no phone number", zap.String("user_id", n.UserID.String()))
		return nil
	}
	return c.sender.Send(ctx, user.PhoneNumber, n.Message)
}
