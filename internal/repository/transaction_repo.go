package repository

import (
	"context"

	"smartstock/internal/dto"
	"smartstock/internal/live"
	"smartstock/internal/model"

	"gorm.io/gorm"
)

// TransactionRepository is the append-only ledger access layer. It exposes no
// update or delete operations: committed entries are immutable and corrections
// happen through compensating stock operations.
type TransactionRepository interface {
	CreateTx(tx *gorm.DB, t *model.StockTransaction) error
	List(ctx context.Context, filter dto.TransactionFilter) ([]model.StockTransaction, int64, error)

	// FindByReference looks up a committed entry by (referenceId, type) for
	// replay deduplication.
	FindByReference(ctx context.Context, referenceID, txType string) (*model.StockTransaction, error)

	DB() *gorm.DB
}

type transactionRepo struct {
	db  *gorm.DB
	bus *live.Bus
}

func NewTransactionRepository(db *gorm.DB, bus *live.Bus) TransactionRepository {
	return &transactionRepo{db: db, bus: bus}
}

func (r *transactionRepo) CreateTx(tx *gorm.DB, t *model.StockTransaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) List(ctx context.Context, filter dto.TransactionFilter) ([]model.StockTransaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockTransaction{})
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.ZoneID != nil {
		q = q.Where("zone_id = ?", *filter.ZoneID)
	}
	if filter.WarehouseID != nil {
		q = q.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var entries []model.StockTransaction
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}

func (r *transactionRepo) FindByReference(ctx context.Context, referenceID, txType string) (*model.StockTransaction, error) {
	var t model.StockTransaction
	err := r.db.WithContext(ctx).
		Where("reference_id = ? AND type = ?", referenceID, txType).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) DB() *gorm.DB { return r.db }
