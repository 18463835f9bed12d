package repository

import (
	"context"

	"smartstock/internal/apperr"
	"smartstock/internal/live"
	"smartstock/internal/model"

	"gorm.io/gorm"
)

type ZoneRepository interface {
	Create(ctx context.Context, z *model.Zone) error
	FindByID(ctx context.Context, id uint) (*model.Zone, error)
	ListByWarehouse(ctx context.Context, warehouseID uint) ([]model.Zone, error)
	List(ctx context.Context) ([]model.Zone, error)
	Update(ctx context.Context, z *model.Zone) error
	Delete(ctx context.Context, id uint) error

	// Used inside stock transactions — callers must pass the tx instance and
	// publish the change themselves after commit.
	FindByIDTx(tx *gorm.DB, id uint) (*model.Zone, error)
	AdjustUtilizedTx(tx *gorm.DB, id uint, delta int) error

	DB() *gorm.DB
}

type zoneRepo struct {
	db  *gorm.DB
	bus *live.Bus
}

func NewZoneRepository(db *gorm.DB, bus *live.Bus) ZoneRepository {
	return &zoneRepo{db: db, bus: bus}
}

func validateZone(z *model.Zone) error {
	if z.Name == "" {
		return apperr.NewValidation("name", "must not be empty")
	}
	if z.Capacity < 0 {
		return apperr.NewValidation("capacity", "must not be negative")
	}
	if z.Utilized < 0 {
		return apperr.NewValidation("utilized", "must not be negative")
	}
	if z.WarehouseID == 0 {
		return apperr.NewValidation("warehouseId", "must reference a warehouse")
	}
	return nil
}

func (r *zoneRepo) Create(ctx context.Context, z *model.Zone) error {
	if err := validateZone(z); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(z).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableZones, z.ID)
	return nil
}

func (r *zoneRepo) FindByID(ctx context.Context, id uint) (*model.Zone, error) {
	var z model.Zone
	if err := r.db.WithContext(ctx).First(&z, id).Error; err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *zoneRepo) ListByWarehouse(ctx context.Context, warehouseID uint) ([]model.Zone, error) {
	var zones []model.Zone
	err := r.db.WithContext(ctx).Where("warehouse_id = ?", warehouseID).Order("name ASC").Find(&zones).Error
	return zones, err
}

func (r *zoneRepo) List(ctx context.Context) ([]model.Zone, error) {
	var zones []model.Zone
	err := r.db.WithContext(ctx).Order("name ASC").Find(&zones).Error
	return zones, err
}

func (r *zoneRepo) Update(ctx context.Context, z *model.Zone) error {
	if err := validateZone(z); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(z).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableZones, z.ID)
	return nil
}

func (r *zoneRepo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Zone{}, id).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableZones, id)
	return nil
}

func (r *zoneRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Zone, error) {
	var z model.Zone
	if err := tx.First(&z, id).Error; err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *zoneRepo) AdjustUtilizedTx(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.Zone{}).Where("id = ?", id).
		Update("utilized", gorm.Expr("utilized + ?", delta)).Error
}

func (r *zoneRepo) DB() *gorm.DB { return r.db }
