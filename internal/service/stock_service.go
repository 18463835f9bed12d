package service

import (
	"context"
	"errors"
	"sync"

	"smartstock/internal/apperr"
	"smartstock/internal/dto"
	"smartstock/internal/live"
	"smartstock/internal/model"
	"smartstock/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StockService is the stock operation engine: the only path by which
// InventoryItem.Quantity and Zone.Utilized change together. Each operation
// validates, checks capacity or availability, then commits the inventory
// delta, the zone delta, and the ledger append as one transaction.
type StockService interface {
	StockIn(ctx context.Context, req dto.StockOperationRequest) (*dto.StockOperationResponse, error)
	StockOut(ctx context.Context, req dto.StockOperationRequest) (*dto.StockOperationResponse, error)
	ListTransactions(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
}

type stockService struct {
	products repository.ProductRepository
	zones    repository.ZoneRepository
	items    repository.InventoryRepository
	ledger   repository.TransactionRepository
	bus      *live.Bus

	// mu serializes the read-check-write sequence of both operations. Two
	// concurrent stock-outs against the same zone must never both pass the
	// availability check against a stale read.
	mu sync.Mutex
}

func NewStockService(
	products repository.ProductRepository,
	zones repository.ZoneRepository,
	items repository.InventoryRepository,
	ledger repository.TransactionRepository,
	bus *live.Bus,
) StockService {
	return &stockService{
		products: products,
		zones:    zones,
		items:    items,
		ledger:   ledger,
		bus:      bus,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with stub repositories).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolve validates the request shape and loads the product and zone, guarding
// against stale UI state pointing at the wrong warehouse.
func (s *stockService) resolve(ctx context.Context, req dto.StockOperationRequest) (*model.Product, *model.Zone, error) {
	if req.Quantity <= 0 {
		return nil, nil, apperr.NewValidation("quantity", "must be positive")
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NewNotFound("product", req.ProductID)
		}
		return nil, nil, err
	}

	zone, err := s.zones.FindByID(ctx, req.ZoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NewNotFound("zone", req.ZoneID)
		}
		return nil, nil, err
	}

	if zone.WarehouseID != req.WarehouseID {
		return nil, nil, apperr.NewValidation("warehouseId", "does not own the selected zone")
	}
	return product, zone, nil
}

// findReplay returns the current snapshots when a non-empty referenceId has
// already been committed for the same operation type, making the call an
// idempotent no-op (double-submit safety).
func (s *stockService) findReplay(ctx context.Context, req dto.StockOperationRequest, txType string, zone *model.Zone) (*dto.StockOperationResponse, bool) {
	if req.ReferenceID == nil || *req.ReferenceID == "" {
		return nil, false
	}
	if _, err := s.ledger.FindByReference(ctx, *req.ReferenceID, txType); err != nil {
		return nil, false
	}

	snapshot := dto.InventoryItemResponse{ProductID: req.ProductID, ZoneID: req.ZoneID}
	if item, err := s.items.FindByProductAndZone(ctx, req.ProductID, req.ZoneID); err == nil {
		snapshot = itemToResponse(item)
	}
	return &dto.StockOperationResponse{
		InventoryItem: snapshot,
		Zone:          zoneToResponse(zone),
		Deduplicated:  true,
	}, true
}

func (s *stockService) StockIn(ctx context.Context, req dto.StockOperationRequest) (*dto.StockOperationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, zone, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp, replayed := s.findReplay(ctx, req, model.TxTypeIn, zone); replayed {
		return resp, nil
	}

	if !CanAccommodate(zone, req.Quantity) {
		return nil, &apperr.CapacityExceededError{
			ZoneID:    zone.ID,
			Available: zone.Capacity - zone.Utilized,
			Requested: req.Quantity,
		}
	}

	var item *model.InventoryItem
	entry := &model.StockTransaction{
		Type:        model.TxTypeIn,
		ProductID:   product.ID,
		ZoneID:      zone.ID,
		WarehouseID: zone.WarehouseID,
		Quantity:    req.Quantity,
		ReferenceID: req.ReferenceID,
		Notes:       req.Notes,
	}
	txErr := runTx(ctx, s.zones.DB(), func(tx *gorm.DB) error {
		existing, err := s.items.FindByProductAndZoneTx(tx, req.ProductID, req.ZoneID)
		switch {
		case err == nil:
			if err := s.items.AdjustQuantityTx(tx, existing.ID, req.Quantity); err != nil {
				return err
			}
			existing.Quantity += req.Quantity
			item = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = &model.InventoryItem{ProductID: req.ProductID, ZoneID: req.ZoneID, Quantity: req.Quantity}
			if err := s.items.CreateTx(tx, item); err != nil {
				return err
			}
		default:
			return err
		}

		if err := s.zones.AdjustUtilizedTx(tx, zone.ID, req.Quantity); err != nil {
			return err
		}
		return s.ledger.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	zone.Utilized += req.Quantity
	s.publishStockChange(item, zone, entry)

	return &dto.StockOperationResponse{
		InventoryItem: itemToResponse(item),
		Zone:          zoneToResponse(zone),
	}, nil
}

func (s *stockService) StockOut(ctx context.Context, req dto.StockOperationRequest) (*dto.StockOperationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, zone, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp, replayed := s.findReplay(ctx, req, model.TxTypeOut, zone); replayed {
		return resp, nil
	}

	item, err := s.items.FindByProductAndZone(ctx, req.ProductID, req.ZoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.InsufficientStockError{
				ProductID: req.ProductID,
				ZoneID:    req.ZoneID,
				Available: 0,
				Requested: req.Quantity,
			}
		}
		return nil, err
	}
	if item.Quantity < req.Quantity {
		return nil, &apperr.InsufficientStockError{
			ProductID: req.ProductID,
			ZoneID:    req.ZoneID,
			Available: item.Quantity,
			Requested: req.Quantity,
		}
	}

	// Utilized tracks the same physical stock the inventory row does. If the
	// row says the stock exists but the zone says it does not, a prior
	// unaccounted mutation broke the books — abort instead of clamping.
	if zone.Utilized < req.Quantity {
		violation := apperr.NewInvariantViolation(
			"zone %d utilized %d below stock-out of %d while inventory row holds %d",
			zone.ID, zone.Utilized, req.Quantity, item.Quantity)
		log.Error().
			Uint("zone_id", zone.ID).
			Uint("product_id", req.ProductID).
			Int("utilized", zone.Utilized).
			Int("requested", req.Quantity).
			Int("item_quantity", item.Quantity).
			Msg("stock bookkeeping drift detected")
		return nil, violation
	}

	entry := &model.StockTransaction{
		Type:        model.TxTypeOut,
		ProductID:   product.ID,
		ZoneID:      zone.ID,
		WarehouseID: zone.WarehouseID,
		Quantity:    req.Quantity,
		ReferenceID: req.ReferenceID,
		Notes:       req.Notes,
	}
	txErr := runTx(ctx, s.zones.DB(), func(tx *gorm.DB) error {
		if err := s.items.AdjustQuantityTx(tx, item.ID, -req.Quantity); err != nil {
			return err
		}
		if err := s.zones.AdjustUtilizedTx(tx, zone.ID, -req.Quantity); err != nil {
			return err
		}
		return s.ledger.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	item.Quantity -= req.Quantity
	zone.Utilized -= req.Quantity
	s.publishStockChange(item, zone, entry)

	return &dto.StockOperationResponse{
		InventoryItem: itemToResponse(item),
		Zone:          zoneToResponse(zone),
	}, nil
}

// publishStockChange notifies subscribers after the transaction committed.
// Publishing from inside the transaction would let consumers observe state
// that may still roll back.
func (s *stockService) publishStockChange(item *model.InventoryItem, zone *model.Zone, entry *model.StockTransaction) {
	s.bus.Publish(live.TableInventoryItems, item.ID)
	s.bus.Publish(live.TableZones, zone.ID)
	s.bus.Publish(live.TableStockTransactions, entry.ID)
}

func (s *stockService) ListTransactions(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	entries, total, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(entries))
	for _, t := range entries {
		items = append(items, dto.TransactionResponse{
			ID:          t.ID,
			Type:        t.Type,
			ProductID:   t.ProductID,
			ZoneID:      t.ZoneID,
			WarehouseID: t.WarehouseID,
			Quantity:    t.Quantity,
			ReferenceID: t.ReferenceID,
			Notes:       t.Notes,
			CreatedAt:   t.CreatedAt,
		})
	}
	return &dto.TransactionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func itemToResponse(item *model.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		ZoneID:    item.ZoneID,
		Quantity:  item.Quantity,
	}
}

func zoneToResponse(z *model.Zone) dto.ZoneResponse {
	pct := UtilizationPercent(z)
	return dto.ZoneResponse{
		ID:             z.ID,
		WarehouseID:    z.WarehouseID,
		Name:           z.Name,
		Type:           z.Type,
		Capacity:       z.Capacity,
		Utilized:       z.Utilized,
		UtilizationPct: pct,
		Tier:           Tier(pct),
	}
}
