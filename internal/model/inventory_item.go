package model

// InventoryItem is the quantity of one product physically present in one zone.
// At most one live row exists per (product, zone) pair — stock operations
// upsert it rather than creating duplicates. Rows are never deleted by stock
// operations, only decremented to zero.
type InventoryItem struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_product_zone"`
	ZoneID    uint `gorm:"not null;uniqueIndex:idx_product_zone"`
	Quantity  int  `gorm:"not null;default:0"`
}
