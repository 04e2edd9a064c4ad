package models

import (
	"time"
)

// OrderItem snapshots unitPrice at line-item creation so later product
// price changes do not alter historical orders.
type OrderItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID   string    `gorm:"type:varchar(36);not null;index" json:"orderId"`
	Order     *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	ProductID string    `gorm:"type:varchar(36);not null;index" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is the item's contribution to the parent order's totalPrice.
func (i *OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
