package dto

import "time"

type StockOperationRequest struct {
	ProductID   uint    `json:"productId" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required"`
	WarehouseID uint    `json:"warehouseId" validate:"required"`
	ZoneID      uint    `json:"zoneId" validate:"required"`
	ReferenceID *string `json:"referenceId"`
	Notes       *string `json:"notes"`
}

// StockOperationResponse returns the post-commit snapshots of the affected
// inventory row and zone. Deduplicated is true when a non-empty referenceId
// matched an already-committed transaction of the same type and the operation
// was a no-op replay.
type StockOperationResponse struct {
	InventoryItem InventoryItemResponse `json:"inventoryItem"`
	Zone          ZoneResponse          `json:"zone"`
	Deduplicated  bool                  `json:"deduplicated,omitempty"`
}

type TransactionFilter struct {
	ProductID   *uint
	ZoneID      *uint
	WarehouseID *uint
	Type        string
	Page        int
	Limit       int
}

type TransactionResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	ProductID   uint      `json:"productId"`
	ZoneID      uint      `json:"zoneId"`
	WarehouseID uint      `json:"warehouseId"`
	Quantity    int       `json:"quantity"`
	ReferenceID *string   `json:"referenceId,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
