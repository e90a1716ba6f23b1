package service

import (
	"go.uber.org/zap"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
)

type AuditService interface {
	Record(entry *model.AuditLog)
	List(filter repository.AuditFilter) ([]model.AuditLog, error)
}

type auditService struct {
	repo   repository.AuditRepository
	logger *zap.Logger
}

func NewAuditService(repo repository.AuditRepository, logger *zap.Logger) AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &auditService{repo: repo, logger: logger}
}

// Record stores entry. A failed write is logged; it never fails the request being audited.
func (s *auditService) Record(entry *model.AuditLog) {
	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("audit log write failed",
			zap.String("type", entry.Type),
			zap.String("action", entry.Action),
			zap.String("user", entry.User),
			zap.Error(err))
	}
}

func (s *auditService) List(filter repository.AuditFilter) ([]model.AuditLog, error) {
	if filter.Limit <= 0 || filter.Limit > 1000 {
		filter.Limit = 200
	}
	return s.repo.FindAll(filter)
}
