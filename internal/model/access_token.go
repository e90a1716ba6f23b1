package model

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken is a one-time onboarding code handed to sales personnel.
type AccessToken struct {
	BaseModel
	Token        string     `gorm:"type:varchar(10);uniqueIndex;not null" json:"token"`
	IsUsed       bool       `gorm:"default:false" json:"is_used"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
	UsedByUserID *uuid.UUID `gorm:"type:uuid" json:"used_by_user_id,omitempty"`
}

func (t *AccessToken) IsValid() bool {
	return !t.IsUsed
}
