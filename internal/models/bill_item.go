package models

import (
	"time"

	"gorm.io/gorm"
)

// BillItem snapshots the product price at submission time; later catalog
// price changes never alter an existing bill.
type BillItem struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	BillID    uint           `json:"bill_id" gorm:"not null;index"`
	ProductID uint           `json:"product_id" gorm:"not null"`
	Quantity  int            `json:"quantity" gorm:"not null;check:quantity > 0"`
	Price     float64        `json:"price" gorm:"not null"`
	Product   *Product       `json:"product"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
