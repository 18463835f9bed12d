package repository_test

import (
	"context"
	"sync"
	"testing"

	"smartstock/internal/apperr"
	"smartstock/internal/dto"
	"smartstock/internal/infra"
	"smartstock/internal/live"
	"smartstock/internal/model"
	"smartstock/internal/repository"
	"smartstock/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type storeFixture struct {
	db     *gorm.DB
	bus    *live.Bus
	prod   repository.ProductRepository
	wh     repository.WarehouseRepository
	zones  repository.ZoneRepository
	items  repository.InventoryRepository
	ledger repository.TransactionRepository
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	db, err := infra.NewTestDatabase()
	require.NoError(t, err)
	bus := live.NewBus(16)
	return &storeFixture{
		db:     db,
		bus:    bus,
		prod:   repository.NewProductRepository(db, bus),
		wh:     repository.NewWarehouseRepository(db, bus),
		zones:  repository.NewZoneRepository(db, bus),
		items:  repository.NewInventoryRepository(db, bus),
		ledger: repository.NewTransactionRepository(db, bus),
	}
}

// seed creates one product and one 100-capacity zone and returns their ids.
func (f *storeFixture) seed(t *testing.T) (productID, warehouseID, zoneID uint) {
	t.Helper()
	ctx := context.Background()

	p := &model.Product{SKU: "LPX1-001", Name: "Laptop X1", Price: decimal.NewFromInt(1200)}
	require.NoError(t, f.prod.Create(ctx, p))

	w := &model.Warehouse{Name: "Main Warehouse", Location: "123 Industrial Dr", Status: "active"}
	require.NoError(t, f.wh.Create(ctx, w))

	z := &model.Zone{WarehouseID: w.ID, Name: "Receiving Bay", Type: "Receiving", Capacity: 100}
	require.NoError(t, f.zones.Create(ctx, z))

	return p.ID, w.ID, z.ID
}

func TestProductValidationBeforeWrite(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()

	err := f.prod.Create(ctx, &model.Product{Name: "No SKU", Price: decimal.NewFromInt(1)})
	var valErr *apperr.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "sku", valErr.Field)

	err = f.prod.Create(ctx, &model.Product{SKU: "X", Name: "Negative", Price: decimal.NewFromInt(-1)})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "price", valErr.Field)
}

func TestProductLookupBySKU(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	productID, _, _ := f.seed(t)

	found, err := f.prod.FindBySKU(ctx, "LPX1-001")
	require.NoError(t, err)
	assert.Equal(t, productID, found.ID)

	_, err = f.prod.FindBySKU(ctx, "MISSING")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSumByProductEmptyIsZero(t *testing.T) {
	f := newStoreFixture(t)
	productID, _, _ := f.seed(t)

	total, err := f.items.SumByProduct(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestRepoWritesNotifyBus(t *testing.T) {
	f := newStoreFixture(t)
	ch, cancel := f.bus.Subscribe(live.TableProducts)
	defer cancel()

	p := &model.Product{SKU: "WM-005", Name: "Wireless Mouse", Price: decimal.NewFromInt(25)}
	require.NoError(t, f.prod.Create(context.Background(), p))

	change := <-ch
	assert.Equal(t, live.TableProducts, change.Table)
	assert.Equal(t, []uint{p.ID}, change.IDs)
}

// TestStockFlowPersisted drives the stock engine against the real store and
// checks what actually landed in the tables.
func TestStockFlowPersisted(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	productID, warehouseID, zoneID := f.seed(t)

	svc := service.NewStockService(f.prod, f.zones, f.items, f.ledger, f.bus)

	_, err := svc.StockIn(ctx, dto.StockOperationRequest{
		ProductID: productID, Quantity: 60, WarehouseID: warehouseID, ZoneID: zoneID,
	})
	require.NoError(t, err)
	_, err = svc.StockOut(ctx, dto.StockOperationRequest{
		ProductID: productID, Quantity: 15, WarehouseID: warehouseID, ZoneID: zoneID,
	})
	require.NoError(t, err)

	item, err := f.items.FindByProductAndZone(ctx, productID, zoneID)
	require.NoError(t, err)
	assert.Equal(t, 45, item.Quantity)

	zone, err := f.zones.FindByID(ctx, zoneID)
	require.NoError(t, err)
	assert.Equal(t, 45, zone.Utilized)

	entries, total, err := f.ledger.List(ctx, dto.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, model.TxTypeOut, entries[0].Type)
	assert.Equal(t, model.TxTypeIn, entries[1].Type)

	outs, _, err := f.ledger.List(ctx, dto.TransactionFilter{Type: model.TxTypeOut})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, 15, outs[0].Quantity)
}

func TestFindByReferenceScopedToType(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	productID, warehouseID, zoneID := f.seed(t)
	svc := service.NewStockService(f.prod, f.zones, f.items, f.ledger, f.bus)

	ref := "PO-2026-001"
	_, err := svc.StockIn(ctx, dto.StockOperationRequest{
		ProductID: productID, Quantity: 10, WarehouseID: warehouseID, ZoneID: zoneID, ReferenceID: &ref,
	})
	require.NoError(t, err)

	found, err := f.ledger.FindByReference(ctx, ref, model.TxTypeIn)
	require.NoError(t, err)
	assert.Equal(t, 10, found.Quantity)

	_, err = f.ledger.FindByReference(ctx, ref, model.TxTypeOut)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestConcurrentStockOuts floods the engine with competing withdrawals. The
// stock must never go negative and exactly the available amount may leave.
func TestConcurrentStockOuts(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	productID, warehouseID, zoneID := f.seed(t)
	svc := service.NewStockService(f.prod, f.zones, f.items, f.ledger, f.bus)

	_, err := svc.StockIn(ctx, dto.StockOperationRequest{
		ProductID: productID, Quantity: 50, WarehouseID: warehouseID, ZoneID: zoneID,
	})
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StockOut(ctx, dto.StockOperationRequest{
				ProductID: productID, Quantity: 10, WarehouseID: warehouseID, ZoneID: zoneID,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var insErr *apperr.InsufficientStockError
		require.ErrorAs(t, err, &insErr)
		rejected++
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, rejected)

	item, err := f.items.FindByProductAndZone(ctx, productID, zoneID)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)

	zone, err := f.zones.FindByID(ctx, zoneID)
	require.NoError(t, err)
	assert.Equal(t, 0, zone.Utilized)
}

func TestZoneAdjustUtilizedIsRelative(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	_, _, zoneID := f.seed(t)

	require.NoError(t, f.zones.AdjustUtilizedTx(f.db, zoneID, 30))
	require.NoError(t, f.zones.AdjustUtilizedTx(f.db, zoneID, -10))

	zone, err := f.zones.FindByID(ctx, zoneID)
	require.NoError(t, err)
	assert.Equal(t, 20, zone.Utilized)
}
