package model

import "time"

// Buyer is a customer referenced by sales. Buyers are never owned by a transaction.
type Buyer struct {
	BaseModel
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	Email    string    `gorm:"type:varchar(255)" json:"email"`
	Phone    string    `gorm:"type:varchar(50)" json:"phone"`
	Address  string    `gorm:"type:text" json:"address"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
	JoinDate time.Time `gorm:"type:date" json:"join_date"`
}
