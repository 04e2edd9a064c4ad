package models

import (
	"time"
)

type Product struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2)" json:"price"`
	QuantityInStock int       `gorm:"not null" json:"quantityInStock"`
	CategoryID      string    `gorm:"type:varchar(36);not null;index" json:"categoryId"`
	Category        *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID          string    `gorm:"type:varchar(36);index" json:"userId"`
	User            *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}
