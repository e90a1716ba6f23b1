package stock

import (
	"context"

	"github.com/google/uuid"

	"go-backoffice/internal/model"
)

// Store opens units of work against the backing database.
//
// Atomic must run fn inside a single transaction: when fn returns an error
// (or the context ends) nothing fn wrote may survive.
type Store interface {
	Atomic(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of writes and locked reads available inside a unit of work.
// Lookups return an error wrapping ErrNotFound for missing rows.
type Tx interface {
	// LockProduct re-reads the product row and holds a write lock on it
	// until the unit of work ends.
	LockProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBuyer(ctx context.Context, id uuid.UUID) (*model.Buyer, error)

	CreateProduct(ctx context.Context, product *model.Product) error
	SetProductQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedBy string) error
	AppendStockLog(ctx context.Context, entry *model.StockLog) error
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	CreateNotification(ctx context.Context, n *model.Notification) error
}

// Actor is the authenticated user a change is attributed to.
// The zero value is the system itself.
type Actor struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Ref is the value stored in created_by / updated_by columns.
func (a Actor) Ref() string {
	if a.ID == uuid.Nil {
		return "system"
	}
	return a.ID.String()
}

func (a Actor) userID() *uuid.UUID {
	if a.ID == uuid.Nil {
		return nil
	}
	id := a.ID
	return &id
}
