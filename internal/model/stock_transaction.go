package model

import "time"

// Transaction types recorded in the ledger.
const (
	TxTypeIn  = "in"
	TxTypeOut = "out"
)

// StockTransaction is one immutable ledger entry, appended exactly once per
// committed stock operation. Rows are never updated or deleted; corrections
// happen through compensating entries.
type StockTransaction struct {
	ID          uint   `gorm:"primaryKey"`
	Type        string `gorm:"not null;index"` // TxTypeIn | TxTypeOut
	ProductID   uint   `gorm:"not null;index"`
	ZoneID      uint   `gorm:"not null;index"`
	WarehouseID uint   `gorm:"not null;index"`
	Quantity    int    `gorm:"not null"` // always positive; Type carries direction
	ReferenceID *string `gorm:"index"`  // external document number, dedup key
	Notes       *string
	CreatedAt   time.Time
}
