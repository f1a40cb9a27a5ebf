package models

import (
	"time"

	"gorm.io/gorm"
)

type Bill struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TableNumber string         `json:"table_number" gorm:"not null;index"`
	Total       float64        `json:"total" gorm:"not null"`
	Status      string         `json:"status" gorm:"default:'open'"` // open, completed
	Items       []BillItem     `json:"items"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type BillStatus string

const (
	BillOpen      BillStatus = "open"
	BillCompleted BillStatus = "completed"
)
