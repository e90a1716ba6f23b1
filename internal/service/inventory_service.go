package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/stock"
	"go-backoffice/internal/ws"
)

type InventoryService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest, actor stock.Actor) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actor stock.Actor) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor stock.Actor) error
	AdjustStock(ctx context.Context, id uuid.UUID, req *AdjustStockRequest, actor stock.Actor) (*stock.Adjustment, error)
	GetAllProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetStockLogs(id uuid.UUID, limit int) ([]model.StockLog, error)
}

type CreateProductRequest struct {
	SKU               string          `json:"sku" validate:"required,max=100"`
	Name              string          `json:"name" validate:"required,max=255"`
	Category          string          `json:"category" validate:"max=100"`
	Unit              string          `json:"unit" validate:"max=20"`
	Price             decimal.Decimal `json:"price" validate:"dec_gte0,dec_cents"`
	Quantity          int             `json:"quantity" validate:"gte=0"`
	LowStockThreshold *int            `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

// UpdateProductRequest never carries a quantity; stock moves only through adjustments and sales.
type UpdateProductRequest struct {
	SKU               string          `json:"sku" validate:"required,max=100"`
	Name              string          `json:"name" validate:"required,max=255"`
	Category          string          `json:"category" validate:"max=100"`
	Unit              string          `json:"unit" validate:"max=20"`
	Price             decimal.Decimal `json:"price" validate:"dec_gte0,dec_cents"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"gte=0"`
	IsActive          *bool           `json:"is_active"`
}

// AdjustStockRequest is a manual restock or correction. An empty direction
// is derived from the sign of delta.
type AdjustStockRequest struct {
	Delta     int    `json:"delta"`
	Direction string `json:"direction" validate:"omitempty,oneof=increase decrease"`
	Note      string `json:"note" validate:"max=500"`
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	stockLogRepo repository.StockLogRepository
	recorder     *stock.Recorder
	settings     SettingsProvider
	events       EventPublisher
	logger       *zap.Logger
}

func NewInventoryService(pRepo repository.ProductRepository, lRepo repository.StockLogRepository,
	recorder *stock.Recorder, settings SettingsProvider, events EventPublisher, logger *zap.Logger) InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inventoryService{
		productRepo:  pRepo,
		stockLogRepo: lRepo,
		recorder:     recorder,
		settings:     settings,
		events:       events,
		logger:       logger,
	}
}

func (s *inventoryService) CreateProduct(ctx context.Context, req *CreateProductRequest, actor stock.Actor) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if existing, err := s.productRepo.FindBySKU(req.SKU); err == nil && existing != nil {
		return nil, ErrSKUExists
	}

	threshold := model.DefaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	} else if settings, err := s.settings.Current(); err == nil {
		threshold = settings.LowStockThreshold
	} else {
		s.logger.Warn("settings unavailable, using default threshold", zap.Error(err))
	}

	actorRef := actor.Ref()
	product := &model.Product{
		SKU:               req.SKU,
		Name:              req.Name,
		Category:          req.Category,
		Unit:              req.Unit,
		Price:             req.Price,
		Quantity:          req.Quantity,
		LowStockThreshold: threshold,
		IsActive:          true,
		CreatedByUserID:   &actorRef,
		UpdatedByUserID:   &actorRef,
	}

	if _, err := s.recorder.CreateProduct(ctx, product, actor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSKUExists
		}
		return nil, err
	}

	publish(s.events, s.logger, ws.Event{
		Type: ws.EventStockUpdate,
		Data: map[string]interface{}{
			"action":  "product_created",
			"product": product,
			"user":    actorInfo(actorRef, actor.Name, actor.Email),
			"message": fmt.Sprintf("%s created product '%s'", actor.Name, product.Name),
		},
	})

	return product, nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actor stock.Actor) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, lookup(err, ErrProductNotFound)
	}

	if req.SKU != product.SKU {
		if existing, err := s.productRepo.FindBySKU(req.SKU); err == nil && existing != nil {
			return nil, ErrSKUExists
		}
	}

	actorRef := actor.Ref()
	product.SKU = req.SKU
	product.Name = req.Name
	product.Category = req.Category
	product.Unit = req.Unit
	product.Price = req.Price
	product.LowStockThreshold = req.LowStockThreshold
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.UpdatedBy = actorRef
	product.UpdatedByUserID = &actorRef

	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSKUExists
		}
		return nil, err
	}

	publish(s.events, s.logger, ws.Event{
		Type: ws.EventStockUpdate,
		Data: map[string]interface{}{
			"action":  "product_updated",
			"product": product,
			"user":    actorInfo(actorRef, actor.Name, actor.Email),
			"message": fmt.Sprintf("%s updated product '%s'", actor.Name, product.Name),
		},
	})

	return product, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID, actor stock.Actor) error {
	if err := s.productRepo.Delete(id, actor.Ref()); err != nil {
		return lookup(err, ErrProductNotFound)
	}

	publish(s.events, s.logger, ws.Event{
		Type: ws.EventStockUpdate,
		Data: map[string]interface{}{
			"action":     "product_deleted",
			"product_id": id,
			"user":       actorInfo(actor.Ref(), actor.Name, actor.Email),
		},
	})
	return nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req *AdjustStockRequest, actor stock.Actor) (*stock.Adjustment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	direction := model.StockDirection(req.Direction)
	if direction == "" {
		direction = model.StockIncrease
		if req.Delta < 0 {
			direction = model.StockDecrease
		}
	}

	adj, err := s.recorder.AdjustStock(ctx, stock.AdjustRequest{
		ProductID: id,
		Delta:     req.Delta,
		Direction: direction,
		Note:      req.Note,
		Actor:     actor,
	})
	if err != nil {
		return nil, err
	}

	publish(s.events, s.logger, ws.Event{
		Type: ws.EventStockUpdate,
		Data: map[string]interface{}{
			"action":    "stock_adjusted",
			"product":   adj.Product,
			"delta":     adj.Entry.Delta,
			"new_stock": adj.Product.Quantity,
			"user":      actorInfo(actor.Ref(), actor.Name, actor.Email),
			"message":   fmt.Sprintf("%s adjusted '%s' by %+d", actor.Name, adj.Product.Name, adj.Entry.Delta),
		},
	})

	return adj, nil
}

func (s *inventoryService) GetAllProducts(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindAll(filter)
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, lookup(err, ErrProductNotFound)
	}
	return product, nil
}

func (s *inventoryService) GetStockLogs(id uuid.UUID, limit int) ([]model.StockLog, error) {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return nil, lookup(err, ErrProductNotFound)
	}
	return s.stockLogRepo.FindByProduct(id, limit)
}
