package models

import (
	"time"
)

type Order struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Date          time.Time `gorm:"not null" json:"date"`
	TotalPrice    float64   `gorm:"type:decimal(10,2);not null;default:0" json:"totalPrice"`
	CustomerName  string    `gorm:"type:varchar(100);not null" json:"customerName"`
	CustomerEmail string    `gorm:"type:varchar(100);not null" json:"customerEmail"`
	UserID        string    `gorm:"type:varchar(36);index" json:"userId"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}
