package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null"`
	Price      float64        `json:"price" gorm:"not null;check:price >= 0"`
	CategoryID uint           `json:"category_id" gorm:"not null;index"`
	ImageURL   string         `json:"image_url"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
