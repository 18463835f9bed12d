package model

import "time"

// Warehouse is a physical facility owning zero or more zones.
type Warehouse struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"index;not null"`
	Location  string
	Status    string `gorm:"not null;default:'active'"` // "active" | "inactive"
	CreatedAt time.Time
	UpdatedAt time.Time

	Zones []Zone `gorm:"foreignKey:WarehouseID"`
}
