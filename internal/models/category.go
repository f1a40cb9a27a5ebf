package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is stored flat with an optional parent reference. Children is
// populated by the catalog service when building the tree response; it is
// not a persisted column.
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	ParentID  *uint          `json:"parent_id" gorm:"index"`
	Children  []Category     `json:"children" gorm:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
