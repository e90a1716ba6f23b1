package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"
	"go-backoffice/internal/stock"
	"go-backoffice/internal/stock/stocktest"
)

type memTransactions struct{ store *stocktest.MemoryStore }

func (r memTransactions) FindAll(filter repository.TransactionFilter) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, txn := range r.store.Transactions() {
		if filter.UserID == nil || txn.UserID == *filter.UserID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r memTransactions) FindByID(id uuid.UUID) (*model.Transaction, error) {
	for _, txn := range r.store.Transactions() {
		if txn.ID == id {
			return &txn, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type saleFixture struct {
	app     *fiber.App
	store   *stocktest.MemoryStore
	userID  uuid.UUID
	product model.Product
	buyer   model.Buyer
}

func newSaleFixture(t *testing.T, privileges ...string) *saleFixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	store := stocktest.NewMemoryStore()
	notifier := stock.NewNotifier(logger)
	recorder := stock.NewRecorder(store, stock.NewLedger(notifier), notifier, logger)
	sales := service.NewSaleService(recorder, memTransactions{store}, nil, logger)

	f := &saleFixture{
		store:  store,
		userID: uuid.New(),
		product: store.AddProduct(model.Product{
			SKU: "SOAP-12", Name: "Soap (12 pack)", Price: decimal.RequireFromString("42.50"),
			Quantity: 10, LowStockThreshold: 3, IsActive: true,
		}),
		buyer: store.AddBuyer(model.Buyer{Name: "Adum Wholesale", IsActive: true}),
	}

	h := NewSaleHandler(sales, time.UTC, logger)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", f.userID.String())
		c.Locals("user_name", "Ama Mensah")
		c.Locals("user_email", "ama@example.com")
		c.Locals("user_privileges", privileges)
		return c.Next()
	})
	app.Post("/transactions", h.CreateTransaction)
	app.Get("/transactions", h.GetTransactions)
	app.Get("/transactions/:id", h.GetTransaction)
	f.app = app
	return f
}

func (f *saleFixture) post(t *testing.T, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestCreateTransaction(t *testing.T) {
	f := newSaleFixture(t, model.PrivTransactionCreate)

	resp, body := f.post(t, fiber.Map{
		"product_id": f.product.ID,
		"buyer_id":   f.buyer.ID,
		"quantity":   4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, key := range []string{"id", "product", "buyer", "quantity", "unit_price", "total", "created_at"} {
		assert.Contains(t, body, key)
	}
	assert.Equal(t, float64(4), body["quantity"])
	assert.True(t, decimal.RequireFromString(body["total"].(string)).Equal(decimal.RequireFromString("170.00")))
	assert.True(t, decimal.RequireFromString(body["unit_price"].(string)).Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, f.buyer.ID.String(), body["buyer"].(map[string]interface{})["id"])
	assert.Equal(t, f.userID.String(), body["user_id"])

	p, _ := f.store.Product(f.product.ID)
	assert.Equal(t, 6, p.Quantity)
}

func TestCreateTransaction_Errors(t *testing.T) {
	f := newSaleFixture(t, model.PrivTransactionCreate)

	tests := []struct {
		name   string
		body   fiber.Map
		status int
		code   string
	}{
		{"insufficient stock", fiber.Map{"product_id": f.product.ID, "buyer_id": f.buyer.ID, "quantity": 11},
			http.StatusBadRequest, "insufficient_stock"},
		{"zero quantity", fiber.Map{"product_id": f.product.ID, "buyer_id": f.buyer.ID, "quantity": 0},
			http.StatusBadRequest, "invalid_request"},
		{"missing buyer", fiber.Map{"product_id": f.product.ID, "quantity": 1},
			http.StatusBadRequest, "invalid_request"},
		{"sub-cent unit price", fiber.Map{"product_id": f.product.ID, "buyer_id": f.buyer.ID, "quantity": 2, "unit_price": "1.005"},
			http.StatusBadRequest, "invalid_request"},
		{"unknown product", fiber.Map{"product_id": uuid.New(), "buyer_id": f.buyer.ID, "quantity": 1},
			http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := f.post(t, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}

	p, _ := f.store.Product(f.product.ID)
	assert.Equal(t, 10, p.Quantity)
	assert.Empty(t, f.store.Transactions())
}

func TestCreateTransaction_PersistenceFailure(t *testing.T) {
	f := newSaleFixture(t, model.PrivTransactionCreate)
	f.store.FailOn["AppendStockLog"] = assert.AnError

	resp, body := f.post(t, fiber.Map{"product_id": f.product.ID, "buyer_id": f.buyer.ID, "quantity": 1})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "persistence_failure", body["code"])
	assert.NotContains(t, body["error"], assert.AnError.Error())
}

func TestGetTransaction_Scope(t *testing.T) {
	f := newSaleFixture(t, model.PrivTransactionCreate, model.PrivTransactionView)
	resp, body := f.post(t, fiber.Map{"product_id": f.product.ID, "buyer_id": f.buyer.ID, "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/transactions/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	f.userID = uuid.New()
	resp, err = f.app.Test(httptest.NewRequest(http.MethodGet, "/transactions/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = f.app.Test(httptest.NewRequest(http.MethodGet, "/transactions", nil))
	require.NoError(t, err)
	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)

	resp, err = f.app.Test(httptest.NewRequest(http.MethodGet, "/transactions?date_from=yesterday", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
