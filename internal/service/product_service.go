package service

import (
	"context"
	"errors"

	"smartstock/internal/apperr"
	"smartstock/internal/dto"
	"smartstock/internal/live"
	"smartstock/internal/model"
	"smartstock/internal/repository"

	"gorm.io/gorm"
)

// ProductService covers product management. The stock engine only reads
// products; everything here writes the product table alone — except Delete,
// which cascades to inventory rows so no orphaned stock survives.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo  repository.ProductRepository
	items repository.InventoryRepository
	zones repository.ZoneRepository
	bus   *live.Bus
}

func NewProductService(
	repo repository.ProductRepository,
	items repository.InventoryRepository,
	zones repository.ZoneRepository,
	bus *live.Bus,
) ProductService {
	return &productService{repo: repo, items: items, zones: zones, bus: bus}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CostPrice:    p.CostPrice,
		ReorderPoint: p.ReorderPoint,
		CategoryID:   p.CategoryID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	// SKU uniqueness check ahead of the insert for a friendly error; the
	// unique index still backs it at the storage level.
	if existing, err := s.repo.FindBySKU(ctx, req.SKU); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, apperr.NewValidation("sku", "already in use")
	}

	p := &model.Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CostPrice:    req.CostPrice,
		ReorderPoint: req.ReorderPoint,
		CategoryID:   req.CategoryID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("product", id)
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 100
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("product", id)
		}
		return nil, err
	}

	if req.SKU != nil && *req.SKU != p.SKU {
		if existing, err := s.repo.FindBySKU(ctx, *req.SKU); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		} else if existing != nil && existing.ID != id {
			return nil, apperr.NewValidation("sku", "already in use")
		}
		p.SKU = *req.SKU
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CostPrice != nil {
		p.CostPrice = req.CostPrice
	}
	if req.ReorderPoint != nil {
		p.ReorderPoint = req.ReorderPoint
	}
	if req.CategoryID != nil {
		p.CategoryID = req.CategoryID
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// Delete removes the product and cascades to its inventory rows. Zone
// utilization is decremented by each row's quantity inside the same
// transaction so the capacity invariant survives the cascade.
func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("product", id)
		}
		return err
	}

	var itemIDs, zoneIDs []uint
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		items, err := s.items.ListByProductTx(tx, id)
		if err != nil {
			return err
		}
		for _, item := range items {
			itemIDs = append(itemIDs, item.ID)
			if item.Quantity > 0 {
				if err := s.zones.AdjustUtilizedTx(tx, item.ZoneID, -item.Quantity); err != nil {
					return err
				}
				zoneIDs = append(zoneIDs, item.ZoneID)
			}
		}
		if err := s.items.DeleteByProductTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
	if txErr != nil {
		return txErr
	}

	s.bus.Publish(live.TableProducts, id)
	s.bus.Publish(live.TableInventoryItems, itemIDs...)
	s.bus.Publish(live.TableZones, zoneIDs...)
	return nil
}
