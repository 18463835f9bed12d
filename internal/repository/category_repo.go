package repository

import (
	"context"

	"smartstock/internal/apperr"
	"smartstock/internal/live"
	"smartstock/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type categoryRepo struct {
	db  *gorm.DB
	bus *live.Bus
}

func NewCategoryRepository(db *gorm.DB, bus *live.Bus) CategoryRepository {
	return &categoryRepo{db: db, bus: bus}
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	if c.Name == "" {
		return apperr.NewValidation("name", "must not be empty")
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableCategories, c.ID)
	return nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	if c.Name == "" {
		return apperr.NewValidation("name", "must not be empty")
	}
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableCategories, c.ID)
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Category{}, id).Error; err != nil {
		return err
	}
	r.bus.Publish(live.TableCategories, id)
	return nil
}

func (r *categoryRepo) DB() *gorm.DB { return r.db }
