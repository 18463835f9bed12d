package model

import "time"

// Zone is a bounded storage area inside a warehouse. Utilized is mutated only
// by the stock engine; 0 <= Utilized <= Capacity holds after every committed
// operation.
type Zone struct {
	ID          uint   `gorm:"primaryKey"`
	WarehouseID uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Type        string // free-form descriptor, e.g. "Pallet Racking"
	Capacity    int    `gorm:"not null"` // units
	Utilized    int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
