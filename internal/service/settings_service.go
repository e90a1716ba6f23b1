package service

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/stock"
)

// SettingsProvider exposes the current system settings to other services.
type SettingsProvider interface {
	Current() (*model.SystemSettings, error)
}

type SettingsService interface {
	SettingsProvider
	Update(req *UpdateSettingsRequest, actor stock.Actor) (*model.SystemSettings, error)
}

type UpdateSettingsRequest struct {
	Currency          *string          `json:"currency" validate:"omitempty,min=1,max=10"`
	CurrencyCode      *string          `json:"currency_code" validate:"omitempty,len=3,alpha"`
	TaxRate           *decimal.Decimal `json:"tax_rate" validate:"omitempty,dec_gte0,dec_cents,lte=100"`
	LowStockThreshold *int             `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

type settingsService struct {
	repo   repository.SettingsRepository
	logger *zap.Logger
}

func NewSettingsService(repo repository.SettingsRepository, logger *zap.Logger) SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Current() (*model.SystemSettings, error) {
	return s.repo.Get()
}

// Update applies only the fields present in req.
func (s *settingsService) Update(req *UpdateSettingsRequest, actor stock.Actor) (*model.SystemSettings, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	settings, err := s.repo.Get()
	if err != nil {
		return nil, err
	}

	if req.Currency != nil {
		settings.Currency = *req.Currency
	}
	if req.CurrencyCode != nil {
		settings.CurrencyCode = strings.ToUpper(*req.CurrencyCode)
	}
	if req.TaxRate != nil {
		settings.TaxRate = *req.TaxRate
	}
	if req.LowStockThreshold != nil {
		settings.LowStockThreshold = *req.LowStockThreshold
	}
	settings.UpdatedBy = actor.Ref()

	if err := s.repo.Save(settings); err != nil {
		return nil, err
	}

	s.logger.Info("settings updated",
		zap.String("currency_code", settings.CurrencyCode),
		zap.String("tax_rate", settings.TaxRate.String()),
		zap.Int("low_stock_threshold", settings.LowStockThreshold),
		zap.String("actor", actor.Ref()))
	return settings, nil
}
