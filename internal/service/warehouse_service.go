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

// WarehouseService manages warehouses and their zones. Zones are owned:
// creating one requires an existing warehouse and deleting one is refused
// while it still holds stock.
type WarehouseService interface {
	Create(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.WarehouseResponse, error)
	List(ctx context.Context) ([]dto.WarehouseResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error)
	Delete(ctx context.Context, id uint) error

	CreateZone(ctx context.Context, warehouseID uint, req dto.CreateZoneRequest) (*dto.ZoneResponse, error)
	GetZone(ctx context.Context, zoneID uint) (*dto.ZoneResponse, error)
	ListZones(ctx context.Context, warehouseID uint) ([]dto.ZoneResponse, error)
	UpdateZone(ctx context.Context, zoneID uint, req dto.UpdateZoneRequest) (*dto.ZoneResponse, error)
	DeleteZone(ctx context.Context, zoneID uint) error
}

type warehouseService struct {
	repo  repository.WarehouseRepository
	zones repository.ZoneRepository
}

func NewWarehouseService(repo repository.WarehouseRepository, zones repository.ZoneRepository) WarehouseService {
	return &warehouseService{repo: repo, zones: zones}
}

func warehouseToResponse(w *model.Warehouse) *dto.WarehouseResponse {
	resp := &dto.WarehouseResponse{
		ID:       w.ID,
		Name:     w.Name,
		Location: w.Location,
		Status:   w.Status,
	}
	for _, z := range w.Zones {
		resp.ZoneCount++
		resp.TotalCapacity += z.Capacity
		resp.TotalUtilized += z.Utilized
	}
	return resp
}

func (s *warehouseService) Create(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w := &model.Warehouse{
		Name:     req.Name,
		Location: req.Location,
		Status:   req.Status,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return warehouseToResponse(w), nil
}

func (s *warehouseService) GetByID(ctx context.Context, id uint) (*dto.WarehouseResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("warehouse", id)
		}
		return nil, err
	}
	return warehouseToResponse(w), nil
}

func (s *warehouseService) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	warehouses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		result = append(result, *warehouseToResponse(&warehouses[i]))
	}
	return result, nil
}

func (s *warehouseService) Update(ctx context.Context, id uint, req dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("warehouse", id)
		}
		return nil, err
	}

	if req.Name != nil {
		w.Name = *req.Name
	}
	if req.Location != nil {
		w.Location = *req.Location
	}
	if req.Status != nil {
		w.Status = *req.Status
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return warehouseToResponse(w), nil
}

// Delete refuses warehouses that still own zones; zones must be removed (and
// their stock reconciled) first.
func (s *warehouseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("warehouse", id)
		}
		return err
	}
	zones, err := s.zones.ListByWarehouse(ctx, id)
	if err != nil {
		return err
	}
	if len(zones) > 0 {
		return apperr.NewValidation("warehouseId", "warehouse still owns zones")
	}
	return s.repo.Delete(ctx, id)
}

func (s *warehouseService) CreateZone(ctx context.Context, warehouseID uint, req dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	if _, err := s.repo.FindByID(ctx, warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("warehouse", warehouseID)
		}
		return nil, err
	}

	// Utilized always starts at zero — only the stock engine moves it.
	z := &model.Zone{
		WarehouseID: warehouseID,
		Name:        req.Name,
		Type:        req.Type,
		Capacity:    req.Capacity,
	}
	if err := s.zones.Create(ctx, z); err != nil {
		return nil, err
	}
	resp := zoneToResponse(z)
	return &resp, nil
}

func (s *warehouseService) GetZone(ctx context.Context, zoneID uint) (*dto.ZoneResponse, error) {
	z, err := s.zones.FindByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("zone", zoneID)
		}
		return nil, err
	}
	resp := zoneToResponse(z)
	return &resp, nil
}

func (s *warehouseService) ListZones(ctx context.Context, warehouseID uint) ([]dto.ZoneResponse, error) {
	if _, err := s.repo.FindByID(ctx, warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("warehouse", warehouseID)
		}
		return nil, err
	}
	zones, err := s.zones.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ZoneResponse, 0, len(zones))
	for i := range zones {
		result = append(result, zoneToResponse(&zones[i]))
	}
	return result, nil
}

func (s *warehouseService) UpdateZone(ctx context.Context, zoneID uint, req dto.UpdateZoneRequest) (*dto.ZoneResponse, error) {
	z, err := s.zones.FindByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("zone", zoneID)
		}
		return nil, err
	}

	if req.Name != nil {
		z.Name = *req.Name
	}
	if req.Type != nil {
		z.Type = *req.Type
	}
	if req.Capacity != nil {
		// Shrinking below current utilization would break the capacity
		// invariant for stock already present.
		if *req.Capacity < z.Utilized {
			return nil, apperr.NewValidation("capacity", "below current utilization")
		}
		z.Capacity = *req.Capacity
	}

	if err := s.zones.Update(ctx, z); err != nil {
		return nil, err
	}
	resp := zoneToResponse(z)
	return &resp, nil
}

// DeleteZone refuses zones with outstanding stock: utilized units correspond
// to inventory rows that must be stock-out reconciled first.
func (s *warehouseService) DeleteZone(ctx context.Context, zoneID uint) error {
	z, err := s.zones.FindByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("zone", zoneID)
		}
		return err
	}
	if z.Utilized > 0 {
		return apperr.NewValidation("zoneId", "zone still holds stock; stock it out before deleting")
	}
	return s.zones.Delete(ctx, zoneID)
}
