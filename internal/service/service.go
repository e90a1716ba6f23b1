package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-backoffice/internal/repository"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/validator"
)

// ErrInvalidInput wraps request validation failures.
var ErrInvalidInput = errors.New("invalid request")

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrBuyerNotFound        = errors.New("buyer not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrRoleNotFound         = errors.New("role not found")
)

var (
	ErrSKUExists   = fmt.Errorf("sku already exists: %w", repository.ErrDuplicate)
	ErrEmailExists = fmt.Errorf("email already exists: %w", repository.ErrDuplicate)
)

func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, validator.Summary(errs))
	}
	return nil
}

// lookup maps a missing row onto notFound and passes other errors through.
func lookup(err error, notFound error) error {
	if repository.IsNotFound(err) {
		return notFound
	}
	return err
}

// Scope says whose sales a caller may see.
type Scope struct {
	UserID uuid.UUID
	All    bool
}

// userFilter is nil when every salesperson's records are visible.
func (s Scope) userFilter() *uuid.UUID {
	if s.All {
		return nil
	}
	id := s.UserID
	return &id
}

// EventPublisher pushes realtime events to connected clients.
type EventPublisher interface {
	Broadcast(ctx context.Context, event ws.Event) error
	SendToUsers(ctx context.Context, userIDs []uuid.UUID, event ws.Event) error
}

const publishTimeout = 5 * time.Second

// publish hands event to the hub in the background. Failures are only logged.
func publish(p EventPublisher, logger *zap.Logger, event ws.Event) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.Broadcast(ctx, event); err != nil {
			logger.Warn("broadcast failed", zap.String("event", event.Type), zap.Error(err))
		}
	}()
}

// actorInfo is the user block attached to broadcast events.
func actorInfo(id, name, email string) map[string]interface{} {
	return map[string]interface{}{
		"id":    id,
		"name":  name,
		"email": email,
	}
}
