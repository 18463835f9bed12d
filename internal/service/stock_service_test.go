package service

import (
	"context"
	"testing"

	"smartstock/internal/apperr"
	"smartstock/internal/dto"
	"smartstock/internal/live"
	"smartstock/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────
// Stubs return copies of stored rows so the engine's post-commit snapshot
// arithmetic cannot alias the "persisted" state.

type stubProductRepo struct {
	products map[uint]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product), nextID: 1}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	all, _ := r.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	result := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

type stubZoneRepo struct {
	zones  map[uint]*model.Zone
	nextID uint
}

func newStubZoneRepo() *stubZoneRepo {
	return &stubZoneRepo{zones: make(map[uint]*model.Zone), nextID: 1}
}

func (r *stubZoneRepo) Create(_ context.Context, z *model.Zone) error {
	if z.ID == 0 {
		z.ID = r.nextID
		r.nextID++
	}
	cp := *z
	r.zones[z.ID] = &cp
	return nil
}

func (r *stubZoneRepo) FindByID(_ context.Context, id uint) (*model.Zone, error) {
	z, ok := r.zones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *z
	return &cp, nil
}

func (r *stubZoneRepo) ListByWarehouse(_ context.Context, warehouseID uint) ([]model.Zone, error) {
	var result []model.Zone
	for _, z := range r.zones {
		if z.WarehouseID == warehouseID {
			result = append(result, *z)
		}
	}
	return result, nil
}

func (r *stubZoneRepo) List(_ context.Context) ([]model.Zone, error) {
	var result []model.Zone
	for _, z := range r.zones {
		result = append(result, *z)
	}
	return result, nil
}

func (r *stubZoneRepo) Update(_ context.Context, z *model.Zone) error {
	r.zones[z.ID] = z
	return nil
}

func (r *stubZoneRepo) Delete(_ context.Context, id uint) error {
	delete(r.zones, id)
	return nil
}

func (r *stubZoneRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Zone, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubZoneRepo) AdjustUtilizedTx(_ *gorm.DB, id uint, delta int) error {
	z, ok := r.zones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	z.Utilized += delta
	return nil
}

func (r *stubZoneRepo) DB() *gorm.DB { return nil }

type stubInventoryRepo struct {
	items  map[uint]*model.InventoryItem
	nextID uint
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{items: make(map[uint]*model.InventoryItem), nextID: 1}
}

func (r *stubInventoryRepo) FindByProductAndZone(_ context.Context, productID, zoneID uint) (*model.InventoryItem, error) {
	for _, item := range r.items {
		if item.ProductID == productID && item.ZoneID == zoneID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventoryRepo) ListByProduct(_ context.Context, productID uint) ([]model.InventoryItem, error) {
	var result []model.InventoryItem
	for _, item := range r.items {
		if item.ProductID == productID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *stubInventoryRepo) ListByZone(_ context.Context, zoneID uint) ([]model.InventoryItem, error) {
	var result []model.InventoryItem
	for _, item := range r.items {
		if item.ZoneID == zoneID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *stubInventoryRepo) SumByProduct(_ context.Context, productID uint) (int, error) {
	total := 0
	for _, item := range r.items {
		if item.ProductID == productID {
			total += item.Quantity
		}
	}
	return total, nil
}

func (r *stubInventoryRepo) FindByProductAndZoneTx(_ *gorm.DB, productID, zoneID uint) (*model.InventoryItem, error) {
	return r.FindByProductAndZone(context.Background(), productID, zoneID)
}

func (r *stubInventoryRepo) CreateTx(_ *gorm.DB, item *model.InventoryItem) error {
	if item.ID == 0 {
		item.ID = r.nextID
		r.nextID++
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubInventoryRepo) AdjustQuantityTx(_ *gorm.DB, id uint, delta int) error {
	item, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity += delta
	return nil
}

func (r *stubInventoryRepo) ListByProductTx(_ *gorm.DB, productID uint) ([]model.InventoryItem, error) {
	return r.ListByProduct(context.Background(), productID)
}

func (r *stubInventoryRepo) DeleteByProductTx(_ *gorm.DB, productID uint) error {
	for id, item := range r.items {
		if item.ProductID == productID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

type stubTransactionRepo struct {
	entries []*model.StockTransaction
	nextID  uint
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{nextID: 1}
}

func (r *stubTransactionRepo) CreateTx(_ *gorm.DB, t *model.StockTransaction) error {
	t.ID = r.nextID
	r.nextID++
	cp := *t
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *stubTransactionRepo) List(_ context.Context, filter dto.TransactionFilter) ([]model.StockTransaction, int64, error) {
	var result []model.StockTransaction
	for _, t := range r.entries {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.ProductID != nil && t.ProductID != *filter.ProductID {
			continue
		}
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (r *stubTransactionRepo) FindByReference(_ context.Context, referenceID, txType string) (*model.StockTransaction, error) {
	for _, t := range r.entries {
		if t.Type == txType && t.ReferenceID != nil && *t.ReferenceID == referenceID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTransactionRepo) DB() *gorm.DB { return nil }

// ── Fixture ──────────────────────────────────────────────────────────────────

type stockFixture struct {
	products *stubProductRepo
	zones    *stubZoneRepo
	items    *stubInventoryRepo
	ledger   *stubTransactionRepo
	svc      StockService
}

// newStockFixture seeds product 1 in zone 1 (warehouse 1) with the §8 layout:
// capacity 100, utilized 40, one inventory row of 40 units.
func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	f := &stockFixture{
		products: newStubProductRepo(),
		zones:    newStubZoneRepo(),
		items:    newStubInventoryRepo(),
		ledger:   newStubTransactionRepo(),
	}
	f.products.products[1] = &model.Product{ID: 1, SKU: "LPX1-001", Name: "Laptop X1", Price: decimal.NewFromInt(1200)}
	f.zones.zones[1] = &model.Zone{ID: 1, WarehouseID: 1, Name: "Receiving Bay", Capacity: 100, Utilized: 40}
	f.items.items[1] = &model.InventoryItem{ID: 1, ProductID: 1, ZoneID: 1, Quantity: 40}
	f.items.nextID = 2
	f.svc = NewStockService(f.products, f.zones, f.items, f.ledger, live.NewBus(8))
	return f
}

func (f *stockFixture) snapshot() (item model.InventoryItem, zone model.Zone, ledgerLen int) {
	return *f.items.items[1], *f.zones.zones[1], len(f.ledger.entries)
}

func opRequest(quantity int) dto.StockOperationRequest {
	return dto.StockOperationRequest{ProductID: 1, Quantity: quantity, WarehouseID: 1, ZoneID: 1}
}

func asCapacity(t *testing.T, err error) *apperr.CapacityExceededError {
	t.Helper()
	var target *apperr.CapacityExceededError
	require.ErrorAs(t, err, &target)
	return target
}

func asInsufficient(t *testing.T, err error) *apperr.InsufficientStockError {
	t.Helper()
	var target *apperr.InsufficientStockError
	require.ErrorAs(t, err, &target)
	return target
}

func asValidation(t *testing.T, err error) *apperr.ValidationError {
	t.Helper()
	var target *apperr.ValidationError
	require.ErrorAs(t, err, &target)
	return target
}

func asNotFound(t *testing.T, err error) *apperr.NotFoundError {
	t.Helper()
	var target *apperr.NotFoundError
	require.ErrorAs(t, err, &target)
	return target
}

func asInvariant(t *testing.T, err error) *apperr.InvariantViolationError {
	t.Helper()
	var target *apperr.InvariantViolationError
	require.ErrorAs(t, err, &target)
	return target
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestStockInHappyPath(t *testing.T) {
	f := newStockFixture(t)

	resp, err := f.svc.StockIn(context.Background(), opRequest(60))
	require.NoError(t, err)

	assert.Equal(t, 100, resp.InventoryItem.Quantity)
	assert.Equal(t, 100, resp.Zone.Utilized)
	assert.Equal(t, 100, f.items.items[1].Quantity)
	assert.Equal(t, 100, f.zones.zones[1].Utilized)
	require.Len(t, f.ledger.entries, 1)
	assert.Equal(t, model.TxTypeIn, f.ledger.entries[0].Type)
	assert.Equal(t, 60, f.ledger.entries[0].Quantity)
}

func TestStockInCreatesItemOnFirstReceipt(t *testing.T) {
	f := newStockFixture(t)
	f.products.products[2] = &model.Product{ID: 2, SKU: "WM-005", Name: "Wireless Mouse", Price: decimal.NewFromInt(25)}

	resp, err := f.svc.StockIn(context.Background(), dto.StockOperationRequest{
		ProductID: 2, Quantity: 10, WarehouseID: 1, ZoneID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.InventoryItem.Quantity)
	assert.Equal(t, 50, resp.Zone.Utilized)

	stored, err := f.items.FindByProductAndZone(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Quantity)
}

func TestStockInCapacityRejectionLeavesStateUntouched(t *testing.T) {
	f := newStockFixture(t)
	itemBefore, zoneBefore, ledgerBefore := f.snapshot()

	_, err := f.svc.StockIn(context.Background(), opRequest(70))
	capErr := asCapacity(t, err)
	assert.Equal(t, 60, capErr.Available)
	assert.Equal(t, 70, capErr.Requested)

	itemAfter, zoneAfter, ledgerAfter := f.snapshot()
	assert.Equal(t, itemBefore, itemAfter)
	assert.Equal(t, zoneBefore, zoneAfter)
	assert.Equal(t, ledgerBefore, ledgerAfter)
}

func TestStockOutInsufficientRejectionLeavesStateUntouched(t *testing.T) {
	f := newStockFixture(t)
	itemBefore, zoneBefore, ledgerBefore := f.snapshot()

	_, err := f.svc.StockOut(context.Background(), opRequest(150))
	insErr := asInsufficient(t, err)
	assert.Equal(t, 40, insErr.Available)
	assert.Equal(t, 150, insErr.Requested)

	itemAfter, zoneAfter, ledgerAfter := f.snapshot()
	assert.Equal(t, itemBefore, itemAfter)
	assert.Equal(t, zoneBefore, zoneAfter)
	assert.Equal(t, ledgerBefore, ledgerAfter)
}

func TestStockOutMissingItemReportsZeroAvailable(t *testing.T) {
	f := newStockFixture(t)
	f.products.products[2] = &model.Product{ID: 2, SKU: "WM-005", Name: "Wireless Mouse", Price: decimal.NewFromInt(25)}

	_, err := f.svc.StockOut(context.Background(), dto.StockOperationRequest{
		ProductID: 2, Quantity: 5, WarehouseID: 1, ZoneID: 1,
	})
	insErr := asInsufficient(t, err)
	assert.Equal(t, 0, insErr.Available)
	assert.Equal(t, 5, insErr.Requested)
}

func TestRoundTripRestoresState(t *testing.T) {
	f := newStockFixture(t)
	itemBefore, zoneBefore, ledgerBefore := f.snapshot()

	_, err := f.svc.StockIn(context.Background(), opRequest(25))
	require.NoError(t, err)
	_, err = f.svc.StockOut(context.Background(), opRequest(25))
	require.NoError(t, err)

	itemAfter, zoneAfter, ledgerAfter := f.snapshot()
	assert.Equal(t, itemBefore.Quantity, itemAfter.Quantity)
	assert.Equal(t, zoneBefore.Utilized, zoneAfter.Utilized)
	assert.Equal(t, ledgerBefore+2, ledgerAfter)
}

// TestReferenceScenario walks the full documented scenario: zone with
// capacity 100 / utilized 40 and a 40-unit inventory row.
func TestReferenceScenario(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	// stockIn 70 → rejected, available 60
	_, err := f.svc.StockIn(ctx, opRequest(70))
	capErr := asCapacity(t, err)
	assert.Equal(t, 60, capErr.Available)
	assert.Equal(t, 70, capErr.Requested)

	// stockIn 60 → accepted, quantity and utilized both 100
	resp, err := f.svc.StockIn(ctx, opRequest(60))
	require.NoError(t, err)
	assert.Equal(t, 100, resp.InventoryItem.Quantity)
	assert.Equal(t, 100, resp.Zone.Utilized)

	// stockOut 150 → rejected, available 100
	_, err = f.svc.StockOut(ctx, opRequest(150))
	insErr := asInsufficient(t, err)
	assert.Equal(t, 100, insErr.Available)
	assert.Equal(t, 150, insErr.Requested)

	// stockOut 100 → accepted, both drop to zero
	resp, err = f.svc.StockOut(ctx, opRequest(100))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.InventoryItem.Quantity)
	assert.Equal(t, 0, resp.Zone.Utilized)

	total, err := f.items.SumByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

// TestConservation runs a mixed sequence and checks that the product total
// recomputed from inventory rows always matches the zone's utilization and
// that zone bounds hold throughout.
func TestConservation(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	deltas := []int{10, -5, 30, -40, 25, -25, 5}
	for _, d := range deltas {
		var err error
		if d > 0 {
			_, err = f.svc.StockIn(ctx, opRequest(d))
		} else {
			_, err = f.svc.StockOut(ctx, opRequest(-d))
		}
		require.NoError(t, err)

		total, err := f.items.SumByProduct(ctx, 1)
		require.NoError(t, err)
		zone := f.zones.zones[1]
		assert.Equal(t, zone.Utilized, total, "utilized must track inventory rows")
		assert.GreaterOrEqual(t, zone.Utilized, 0)
		assert.LessOrEqual(t, zone.Utilized, zone.Capacity)
		assert.GreaterOrEqual(t, f.items.items[1].Quantity, 0)
	}
}

func TestWarehouseZoneMismatchRejected(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.StockIn(context.Background(), dto.StockOperationRequest{
		ProductID: 1, Quantity: 5, WarehouseID: 2, ZoneID: 1,
	})
	valErr := asValidation(t, err)
	assert.Equal(t, "warehouseId", valErr.Field)
}

func TestNonPositiveQuantityRejected(t *testing.T) {
	f := newStockFixture(t)

	for _, q := range []int{0, -3} {
		_, err := f.svc.StockIn(context.Background(), opRequest(q))
		valErr := asValidation(t, err)
		assert.Equal(t, "quantity", valErr.Field)

		_, err = f.svc.StockOut(context.Background(), opRequest(q))
		valErr = asValidation(t, err)
		assert.Equal(t, "quantity", valErr.Field)
	}
}

func TestUnknownProductAndZone(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.StockIn(context.Background(), dto.StockOperationRequest{
		ProductID: 99, Quantity: 5, WarehouseID: 1, ZoneID: 1,
	})
	nf := asNotFound(t, err)
	assert.Equal(t, "product", nf.Entity)

	_, err = f.svc.StockIn(context.Background(), dto.StockOperationRequest{
		ProductID: 1, Quantity: 5, WarehouseID: 1, ZoneID: 99,
	})
	nf = asNotFound(t, err)
	assert.Equal(t, "zone", nf.Entity)
}

func TestReferenceIDReplayIsDeduplicated(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	ref := "PO-2026-001"

	req := opRequest(10)
	req.ReferenceID = &ref

	first, err := f.svc.StockIn(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Deduplicated)
	assert.Equal(t, 50, first.InventoryItem.Quantity)

	// Same reference again: no-op replay, no second ledger entry.
	second, err := f.svc.StockIn(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Deduplicated)
	assert.Equal(t, 50, second.InventoryItem.Quantity)
	assert.Equal(t, 50, f.items.items[1].Quantity)
	assert.Len(t, f.ledger.entries, 1)

	// A stock-out under the same reference is a different dedup key.
	out, err := f.svc.StockOut(ctx, req)
	require.NoError(t, err)
	assert.False(t, out.Deduplicated)
	assert.Len(t, f.ledger.entries, 2)
}

func TestUtilizedDriftRaisesInvariantViolation(t *testing.T) {
	f := newStockFixture(t)
	// Simulate a prior unaccounted mutation: the inventory row still claims
	// 40 units but the zone only accounts for 10.
	f.zones.zones[1].Utilized = 10

	_, err := f.svc.StockOut(context.Background(), opRequest(20))
	require.Error(t, err)
	asInvariant(t, err)

	// Nothing committed.
	assert.Equal(t, 40, f.items.items[1].Quantity)
	assert.Equal(t, 10, f.zones.zones[1].Utilized)
	assert.Empty(t, f.ledger.entries)
}

func TestListTransactionsFilters(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	_, err := f.svc.StockIn(ctx, opRequest(10))
	require.NoError(t, err)
	_, err = f.svc.StockOut(ctx, opRequest(5))
	require.NoError(t, err)

	all, err := f.svc.ListTransactions(ctx, dto.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	outs, err := f.svc.ListTransactions(ctx, dto.TransactionFilter{Type: model.TxTypeOut})
	require.NoError(t, err)
	assert.Equal(t, int64(1), outs.Total)
	assert.Equal(t, 5, outs.Data[0].Quantity)
}
