package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item identified by its SKU. The stock engine never
// writes to this table — it only reads Price and ReorderPoint.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	SKU         string `gorm:"uniqueIndex;not null"`
	Name        string `gorm:"index;not null"`
	Description *string
	Price       decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	CostPrice   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	// ReorderPoint is the low-stock threshold; nil means the global default applies.
	ReorderPoint *int
	CategoryID   *uint `gorm:"index"` // weak reference — no FK constraint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
