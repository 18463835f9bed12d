package model

import "time"

// Category classifies products. Products reference it weakly by id.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's pluralization (category → categories).
func (Category) TableName() string { return "categories" }
