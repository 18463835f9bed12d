package repository

import (
	"context"

	"smartstock/internal/live"
	"smartstock/internal/model"

	"gorm.io/gorm"
)

type InventoryRepository interface {
	FindByProductAndZone(ctx context.Context, productID, zoneID uint) (*model.InventoryItem, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.InventoryItem, error)
	ListByZone(ctx context.Context, zoneID uint) ([]model.InventoryItem, error)

	// SumByProduct recomputes the product total from current rows on every
	// call. There is deliberately no cached counter to maintain.
	SumByProduct(ctx context.Context, productID uint) (int, error)

	// Tx variants for use inside stock transactions.
	FindByProductAndZoneTx(tx *gorm.DB, productID, zoneID uint) (*model.InventoryItem, error)
	CreateTx(tx *gorm.DB, item *model.InventoryItem) error
	AdjustQuantityTx(tx *gorm.DB, id uint, delta int) error
	ListByProductTx(tx *gorm.DB, productID uint) ([]model.InventoryItem, error)
	DeleteByProductTx(tx *gorm.DB, productID uint) error

	DB() *gorm.DB
}

type inventoryRepo struct {
	db  *gorm.DB
	bus *live.Bus
}

func NewInventoryRepository(db *gorm.DB, bus *live.Bus) InventoryRepository {
	return &inventoryRepo{db: db, bus: bus}
}

func (r *inventoryRepo) FindByProductAndZone(ctx context.Context, productID, zoneID uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND zone_id = ?", productID, zoneID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) ListByProduct(ctx context.Context, productID uint) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&items).Error
	return items, err
}

func (r *inventoryRepo) ListByZone(ctx context.Context, zoneID uint) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Where("zone_id = ?", zoneID).Find(&items).Error
	return items, err
}

func (r *inventoryRepo) SumByProduct(ctx context.Context, productID uint) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("product_id = ?", productID).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil { // no rows yet
		return 0, nil
	}
	return *total, nil
}

func (r *inventoryRepo) FindByProductAndZoneTx(tx *gorm.DB, productID, zoneID uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := tx.Where("product_id = ? AND zone_id = ?", productID, zoneID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) CreateTx(tx *gorm.DB, item *model.InventoryItem) error {
	return tx.Create(item).Error
}

func (r *inventoryRepo) AdjustQuantityTx(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.InventoryItem{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *inventoryRepo) ListByProductTx(tx *gorm.DB, productID uint) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := tx.Where("product_id = ?", productID).Find(&items).Error
	return items, err
}

func (r *inventoryRepo) DeleteByProductTx(tx *gorm.DB, productID uint) error {
	return tx.Where("product_id = ?", productID).Delete(&model.InventoryItem{}).Error
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
