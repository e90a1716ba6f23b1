package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records a successful mutating API call.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Type      string    `gorm:"type:varchar(50);index" json:"type"`
	User      string    `gorm:"type:varchar(255);index" json:"user"`
	Action    string    `gorm:"type:text" json:"action"`
	IPAddress string    `gorm:"type:varchar(64)" json:"ip_address"`
	Details   string    `gorm:"type:text" json:"details"`
	Timestamp time.Time `gorm:"index;autoCreateTime" json:"timestamp"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
