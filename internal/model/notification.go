package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type Notification struct {
	BaseModel
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID *uuid.UUID       `gorm:"type:uuid" json:"product_id,omitempty"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"type:varchar(10);not null" json:"type"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
}
