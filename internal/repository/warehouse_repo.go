package repository

import (
	"context"

	"smartstock/internal/apperr"
	"smartstock/internal/live"
	"smartstock/internal/model"

	"gorm.io/gorm"
)

type WarehouseRepository interface {
	Create(ctx context.Context, w *model.Warehouse) error
	FindByID(ctx context.Context, id uint) (*model.Warehouse, error)
	List(ctx context.Context) ([]model.Warehouse, error)
	Update(ctx context.Context, w *model.Warehouse) error
	Delete(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type warehouseRepo struct {
	db  *gorm.DB
	bus *live.Bus
}

func NewWarehouseRepository(db *gorm.DB, bus *live.Bus) WarehouseRepository {
	return &warehouseRepo{db: db, bus: bus}
}

func validateWarehouse(w *model.Warehouse) error {
	if w.Name == "" {
		return apperr.NewValidation("name", "must not be empty")
	}
	if w.Status != "" && w.Status != "active" && w.Status != "inactive" {
		return apperr.NewValidation("status", "must be active or inactive")
	}
	return nil
}

func (r *warehouseRepo) Create(ctx context.Context, w *model.Warehouse) error {
	if err := validateWarehouse(w); err != nil {
		return err
	}
	if w.Status == "" {
		w.Status = "active"
	}
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableWarehouses, w.ID)
	return nil
}

func (r *warehouseRepo) FindByID(ctx context.Context, id uint) (*model.Warehouse, error) {
	var w model.Warehouse
	if err := r.db.WithContext(ctx).Preload("Zones").First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *warehouseRepo) List(ctx context.Context) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.WithContext(ctx).Preload("Zones").Order("name ASC").Find(&warehouses).Error
	return warehouses, err
}

func (r *warehouseRepo) Update(ctx context.Context, w *model.Warehouse) error {
	if err := validateWarehouse(w); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit("Zones").Save(w).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableWarehouses, w.ID)
	return nil
}

func (r *warehouseRepo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Warehouse{}, id).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableWarehouses, id)
	return nil
}

func (r *warehouseRepo) DB() *gorm.DB { return r.db }
