package service

import (
	"context"
	"errors"

	"smartstock/internal/apperr"
	"smartstock/internal/dto"
	"smartstock/internal/model"
	"smartstock/internal/repository"

	"gorm.io/gorm"
)

// Product stock statuses derived by the aggregator. Never persisted: status is
// recomputed from current inventory rows on every call, so there is no stored
// state that can go stale.
const (
	StatusInStock    = "in-stock"
	StatusLowStock   = "low-stock"
	StatusOutOfStock = "out-of-stock"
)

// InventoryService derives read-only stock views: per-product totals, status
// classification, per-zone item lists, and low-stock alerts.
type InventoryService interface {
	TotalStock(ctx context.Context, productID uint) (int, error)
	ProductStock(ctx context.Context, productID uint) (*dto.ProductStockResponse, error)
	Overview(ctx context.Context) ([]dto.ProductStockResponse, error)
	LowStockAlerts(ctx context.Context) ([]dto.ProductStockResponse, error)
	ZoneItems(ctx context.Context, zoneID uint) ([]dto.InventoryItemResponse, error)
}

type inventoryService struct {
	products repository.ProductRepository
	items    repository.InventoryRepository
	zones    repository.ZoneRepository

	// defaultReorderPoint applies to products without their own threshold.
	defaultReorderPoint int
}

func NewInventoryService(
	products repository.ProductRepository,
	items repository.InventoryRepository,
	zones repository.ZoneRepository,
	defaultReorderPoint int,
) InventoryService {
	if defaultReorderPoint < 0 {
		defaultReorderPoint = 0
	}
	return &inventoryService{
		products:            products,
		items:               items,
		zones:               zones,
		defaultReorderPoint: defaultReorderPoint,
	}
}

func (s *inventoryService) reorderPoint(p *model.Product) int {
	if p.ReorderPoint != nil {
		return *p.ReorderPoint
	}
	return s.defaultReorderPoint
}

// classify is the three-state machine: out-of-stock at zero, low-stock below
// the reorder point, in-stock otherwise.
func classify(total, reorderPoint int) string {
	switch {
	case total == 0:
		return StatusOutOfStock
	case total < reorderPoint:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

func (s *inventoryService) TotalStock(ctx context.Context, productID uint) (int, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NewNotFound("product", productID)
		}
		return 0, err
	}
	return s.items.SumByProduct(ctx, productID)
}

func (s *inventoryService) ProductStock(ctx context.Context, productID uint) (*dto.ProductStockResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("product", productID)
		}
		return nil, err
	}
	total, err := s.items.SumByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := s.toStockResponse(p, total)
	return &resp, nil
}

func (s *inventoryService) Overview(ctx context.Context) ([]dto.ProductStockResponse, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductStockResponse, 0, len(products))
	for i := range products {
		total, err := s.items.SumByProduct(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, s.toStockResponse(&products[i], total))
	}
	return result, nil
}

func (s *inventoryService) LowStockAlerts(ctx context.Context) ([]dto.ProductStockResponse, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.ProductStockResponse, 0)
	for _, p := range overview {
		if p.Status != StatusInStock {
			alerts = append(alerts, p)
		}
	}
	return alerts, nil
}

func (s *inventoryService) ZoneItems(ctx context.Context, zoneID uint) ([]dto.InventoryItemResponse, error) {
	if _, err := s.zones.FindByID(ctx, zoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("zone", zoneID)
		}
		return nil, err
	}
	items, err := s.items.ListByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		result = append(result, itemToResponse(&items[i]))
	}
	return result, nil
}

func (s *inventoryService) toStockResponse(p *model.Product, total int) dto.ProductStockResponse {
	rp := s.reorderPoint(p)
	return dto.ProductStockResponse{
		ProductID:    p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		TotalStock:   total,
		ReorderPoint: rp,
		Status:       classify(total, rp),
	}
}
