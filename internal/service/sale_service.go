package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/stock"
	"go-backoffice/internal/ws"
)

type SaleService interface {
	RecordSale(ctx context.Context, req *RecordSaleRequest, actor stock.Actor) (*model.Transaction, error)
	ListTransactions(scope Scope, filter repository.TransactionFilter) ([]model.Transaction, error)
	GetTransaction(scope Scope, id uuid.UUID) (*model.Transaction, error)
}

type RecordSaleRequest struct {
	ProductID uuid.UUID        `json:"product_id" validate:"uuid_required"`
	BuyerID   uuid.UUID        `json:"buyer_id" validate:"uuid_required"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,dec_gte0,dec_cents"`
	Note      string           `json:"note" validate:"max=500"`
}

type saleService struct {
	recorder *stock.Recorder
	txRepo   repository.TransactionRepository
	events   EventPublisher
	logger   *zap.Logger
}

func NewSaleService(recorder *stock.Recorder, txRepo repository.TransactionRepository, events EventPublisher, logger *zap.Logger) SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &saleService{recorder: recorder, txRepo: txRepo, events: events, logger: logger}
}

// RecordSale leaves quantity checks to the recorder so that a non-positive
// quantity surfaces as stock.ErrInvalidSale.
func (s *saleService) RecordSale(ctx context.Context, req *RecordSaleRequest, actor stock.Actor) (*model.Transaction, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	res, err := s.recorder.RecordSale(ctx, stock.SaleRequest{
		ProductID: req.ProductID,
		BuyerID:   req.BuyerID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Note:      req.Note,
		Actor:     actor,
	})
	if err != nil {
		return nil, err
	}

	txn := res.Transaction
	publish(s.events, s.logger, ws.Event{
		Type: ws.EventSale,
		Data: map[string]interface{}{
			"transaction_id": txn.ID,
			"product_id":     txn.ProductID,
			"quantity":       txn.Quantity,
			"total":          txn.Total,
			"new_stock":      res.Adjustment.Product.Quantity,
			"user":           actorInfo(actor.Ref(), actor.Name, actor.Email),
			"message": fmt.Sprintf("%s sold %d x '%s' to %s",
				actor.Name, txn.Quantity, txn.Product.Name, txn.Buyer.Name),
		},
	})

	return txn, nil
}

func (s *saleService) ListTransactions(scope Scope, filter repository.TransactionFilter) ([]model.Transaction, error) {
	filter.UserID = scope.userFilter()
	return s.txRepo.FindAll(filter)
}

// GetTransaction hides other users' sales from callers limited to their own.
func (s *saleService) GetTransaction(scope Scope, id uuid.UUID) (*model.Transaction, error) {
	txn, err := s.txRepo.FindByID(id)
	if err != nil {
		return nil, lookup(err, ErrTransactionNotFound)
	}
	if !scope.All && txn.UserID != scope.UserID {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}
