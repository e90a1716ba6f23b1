package stock_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"

	"go-backoffice/internal/model"
	"go-backoffice/internal/stock"
	"go-backoffice/internal/stock/stocktest"
)

type fixture struct {
	store    *stocktest.MemoryStore
	notifier *stock.Notifier
	ledger   *stock.Ledger
	recorder *stock.Recorder
	actor    stock.Actor
	buyer    model.Buyer
}

func newFixture(t *testing.T, channels ...stock.Channel) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	store := stocktest.NewMemoryStore()
	notifier := stock.NewNotifier(logger, channels...)
	ledger := stock.NewLedger(notifier)

	return &fixture{
		store:    store,
		notifier: notifier,
		ledger:   ledger,
		recorder: stock.NewRecorder(store, ledger, notifier, logger),
		actor:    stock.Actor{ID: uuid.New(), Name: "Ama Mensah", Email: "ama@example.com"},
		buyer:    store.AddBuyer(model.Buyer{Name: "Kofi Traders", IsActive: true}),
	}
}

func (f *fixture) addProduct(quantity, threshold int, price string) model.Product {
	return f.store.AddProduct(model.Product{
		SKU:               "SKU-" + uuid.NewString()[:8],
		Name:              "Shea Butter 250g",
		Price:             decimal.RequireFromString(price),
		Quantity:          quantity,
		LowStockThreshold: threshold,
		IsActive:          true,
	})
}

func (f *fixture) sell(productID uuid.UUID, quantity int) (*stock.SaleResult, error) {
	return f.recorder.RecordSale(context.Background(), stock.SaleRequest{
		ProductID: productID,
		BuyerID:   f.buyer.ID,
		Quantity:  quantity,
		Actor:     f.actor,
	})
}

func (f *fixture) quantity(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	p, ok := f.store.Product(productID)
	if !ok {
		t.Fatalf("product %s missing", productID)
	}
	return p.Quantity
}

type recordingChannel struct {
	name      string
	err       error
	delivered chan *model.Notification
}

func newRecordingChannel(name string, err error) *recordingChannel {
	return &recordingChannel{name: name, err: err, delivered: make(chan *model.Notification, 16)}
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Deliver(ctx context.Context, n *model.Notification) error {
	c.delivered <- n
	return c.err
}
