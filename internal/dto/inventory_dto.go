package dto

type InventoryItemResponse struct {
	ID        uint `json:"id"`
	ProductID uint `json:"productId"`
	ZoneID    uint `json:"zoneId"`
	Quantity  int  `json:"quantity"`
}

// ProductStockResponse is the derived per-product view: total across all
// zones plus the recomputed status. Nothing here is persisted.
type ProductStockResponse struct {
	ProductID    uint   `json:"productId"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	TotalStock   int    `json:"totalStock"`
	ReorderPoint int    `json:"reorderPoint"`
	Status       string `json:"status"` // in-stock | low-stock | out-of-stock
}
