package repository

import (
	"time"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	FindByUser(userID uuid.UUID, unreadOnly bool) ([]model.Notification, error)
	CountUnread(userID uuid.UUID) (int64, error)
	MarkRead(id, userID uuid.UUID) (*model.Notification, error)
	MarkAllRead(userID uuid.UUID) (int64, error)
	Delete(id, userID uuid.UUID) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

func (r *notificationRepo) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepo) FindByUser(userID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	var notifications []model.Notification
	q := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead only touches notifications owned by userID.
func (r *notificationRepo) MarkRead(id, userID uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.First(&n, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	if n.IsRead {
		return &n, nil
	}

	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	if err := r.db.Model(&n).Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) MarkAllRead(userID uuid.UUID) (int64, error) {
	res := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) Delete(id, userID uuid.UUID) error {
	res := r.db.Delete(&model.Notification{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
