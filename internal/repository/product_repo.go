package repository

import (
	"context"

	"smartstock/internal/apperr"
	"smartstock/internal/dto"
	"smartstock/internal/live"
	"smartstock/internal/model"

	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error

	// DeleteTx removes the product inside an ongoing transaction. The caller
	// owns the cascade (inventory rows, zone utilization) and the post-commit
	// notification.
	DeleteTx(tx *gorm.DB, id uint) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct {
	db  *gorm.DB
	bus *live.Bus
}

func NewProductRepository(db *gorm.DB, bus *live.Bus) ProductRepository {
	return &productRepo{db: db, bus: bus}
}

// validateProduct guards required fields before any write reaches storage.
func validateProduct(p *model.Product) error {
	if p.SKU == "" {
		return apperr.NewValidation("sku", "must not be empty")
	}
	if p.Name == "" {
		return apperr.NewValidation("name", "must not be empty")
	}
	if p.Price.IsNegative() {
		return apperr.NewValidation("price", "must not be negative")
	}
	if p.CostPrice != nil && p.CostPrice.IsNegative() {
		return apperr.NewValidation("costPrice", "must not be negative")
	}
	if p.ReorderPoint != nil && *p.ReorderPoint < 0 {
		return apperr.NewValidation("reorderPoint", "must not be negative")
	}
	return nil
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableProducts, p.ID)
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.SKU != "" {
		q = q.Where("sku = ?", filter.SKU)
	}
	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableProducts, p.ID)
	return nil
}

func (r *productRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Product{}, id).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
