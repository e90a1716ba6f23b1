// Package stocktest provides an in-memory stock.Store for tests.
package stocktest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-backoffice/internal/model"
	"go-backoffice/internal/stock"
)

// MemoryStore keeps every table in maps and slices. Units of work run one
// at a time against a private copy that replaces the committed state only
// when the callback succeeds, so it behaves like a serializable database.
type MemoryStore struct {
	mu    sync.Mutex
	state state

	// FailOn makes the named Tx method return the given error.
	FailOn map[string]error
}

type state struct {
	products      map[uuid.UUID]model.Product
	buyers        map[uuid.UUID]model.Buyer
	logs          []model.StockLog
	transactions  []model.Transaction
	notifications []model.Notification
}

func (s state) clone() state {
	c := state{
		products:      make(map[uuid.UUID]model.Product, len(s.products)),
		buyers:        make(map[uuid.UUID]model.Buyer, len(s.buyers)),
		logs:          append([]model.StockLog(nil), s.logs...),
		transactions:  append([]model.Transaction(nil), s.transactions...),
		notifications: append([]model.Notification(nil), s.notifications...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.buyers {
		c.buyers[k] = v
	}
	return c
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: state{
			products: map[uuid.UUID]model.Product{},
			buyers:   map[uuid.UUID]model.Buyer{},
		},
		FailOn: map[string]error{},
	}
}

func (s *MemoryStore) Atomic(ctx context.Context, fn func(tx stock.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{state: s.state.clone(), failOn: s.FailOn}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// AddProduct seeds a product directly, bypassing the ledger.
func (s *MemoryStore) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.state.products[p.ID] = p
	return p
}

func (s *MemoryStore) AddBuyer(b model.Buyer) model.Buyer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.state.buyers[b.ID] = b
	return b
}

func (s *MemoryStore) Product(id uuid.UUID) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.products[id]
	return p, ok
}

func (s *MemoryStore) StockLogs(productID uuid.UUID) []model.StockLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.StockLog
	for _, l := range s.state.logs {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out
}

func (s *MemoryStore) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Transaction(nil), s.state.transactions...)
}

func (s *MemoryStore) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.state.notifications...)
}

type memTx struct {
	state  state
	failOn map[string]error
}

func (t *memTx) fail(op string) error {
	if err, ok := t.failOn[op]; ok {
		return err
	}
	return nil
}

func (t *memTx) LockProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if err := t.fail("LockProduct"); err != nil {
		return nil, err
	}
	p, ok := t.state.products[id]
	if !ok || p.DeletedAt.Valid {
		return nil, fmt.Errorf("product %s: %w", id, stock.ErrNotFound)
	}
	return &p, nil
}

func (t *memTx) GetBuyer(ctx context.Context, id uuid.UUID) (*model.Buyer, error) {
	if err := t.fail("GetBuyer"); err != nil {
		return nil, err
	}
	b, ok := t.state.buyers[id]
	if !ok || b.DeletedAt.Valid {
		return nil, fmt.Errorf("buyer %s: %w", id, stock.ErrNotFound)
	}
	return &b, nil
}

func (t *memTx) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := t.fail("CreateProduct"); err != nil {
		return err
	}
	for _, p := range t.state.products {
		if p.SKU == product.SKU {
			return fmt.Errorf("sku %s already exists", product.SKU)
		}
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	t.state.products[product.ID] = *product
	return nil
}

func (t *memTx) SetProductQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedBy string) error {
	if err := t.fail("SetProductQuantity"); err != nil {
		return err
	}
	p, ok := t.state.products[id]
	if !ok {
		return fmt.Errorf("product %s: %w", id, stock.ErrNotFound)
	}
	p.Quantity = quantity
	p.UpdatedBy = updatedBy
	p.UpdatedAt = time.Now()
	t.state.products[id] = p
	return nil
}

func (t *memTx) AppendStockLog(ctx context.Context, entry *model.StockLog) error {
	if err := t.fail("AppendStockLog"); err != nil {
		return err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	t.state.logs = append(t.state.logs, *entry)
	return nil
}

func (t *memTx) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := t.fail("CreateTransaction"); err != nil {
		return err
	}
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	txn.CreatedAt = time.Now()
	txn.UpdatedAt = txn.CreatedAt
	// Money columns are numeric(12,2) and numeric(14,2).
	stored := *txn
	stored.UnitPrice = stored.UnitPrice.Round(model.MoneyScale)
	stored.Total = stored.Total.Round(model.MoneyScale)
	t.state.transactions = append(t.state.transactions, stored)
	return nil
}

func (t *memTx) CreateNotification(ctx context.Context, n *model.Notification) error {
	if err := t.fail("CreateNotification"); err != nil {
		return err
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	t.state.notifications = append(t.state.notifications, *n)
	return nil
}
