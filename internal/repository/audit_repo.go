package repository

import (
	"time"

	"go-backoffice/internal/model"

	"gorm.io/gorm"
)

type AuditFilter struct {
	Type  string
	User  string
	From  *time.Time
	To    *time.Time
	Limit int
}

type AuditRepository interface {
	Create(entry *model.AuditLog) error
	FindAll(filter AuditFilter) ([]model.AuditLog, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditRepo) FindAll(filter AuditFilter) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	q := r.db.Model(&model.AuditLog{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.User != "" {
		q = q.Where("\"user\" ILIKE ?", "%"+filter.User+"%")
	}
	if filter.From != nil {
		q = q.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("timestamp < ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	err := q.Order("timestamp DESC").Find(&logs).Error
	return logs, err
}
