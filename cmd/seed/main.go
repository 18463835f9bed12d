// Command seed populates an empty local store with demo data so the UI has
// something to show on first run. Running it against a non-empty store is a
// no-op per table.
package main

import (
	"os"
	"time"

	"smartstock/internal/config"
	"smartstock/internal/infra"
	"smartstock/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open local store")
	}

	var productCount int64
	db.Model(&model.Product{}).Count(&productCount)
	if productCount == 0 {
		products := []model.Product{
			{SKU: "LPX1-001", Name: "Laptop X1", Price: decimal.NewFromInt(1200)},
			{SKU: "WM-005", Name: "Wireless Mouse", Price: decimal.NewFromInt(25)},
		}
		if err := db.Create(&products).Error; err != nil {
			log.Fatal().Err(err).Msg("seed products")
		}
		log.Info().Int("count", len(products)).Msg("seeded products")
	}

	var warehouseCount int64
	db.Model(&model.Warehouse{}).Count(&warehouseCount)
	if warehouseCount == 0 {
		warehouses := []model.Warehouse{
			{Name: "Main Warehouse", Location: "123 Industrial Dr", Status: "active"},
			{Name: "Secondary Storage", Location: "456 Commerce Ave", Status: "active"},
		}
		if err := db.Create(&warehouses).Error; err != nil {
			log.Fatal().Err(err).Msg("seed warehouses")
		}
		log.Info().Int("count", len(warehouses)).Msg("seeded warehouses")
	}

	var zoneCount int64
	db.Model(&model.Zone{}).Count(&zoneCount)
	if zoneCount == 0 {
		var first model.Warehouse
		if err := db.Order("id ASC").First(&first).Error; err != nil {
			log.Fatal().Err(err).Msg("no warehouse to attach zones to")
		}
		zones := []model.Zone{
			{WarehouseID: first.ID, Name: "Receiving Bay", Type: "Receiving", Capacity: 100},
			{WarehouseID: first.ID, Name: "Bulk Storage A", Type: "Pallet Racking", Capacity: 500},
		}
		if err := db.Create(&zones).Error; err != nil {
			log.Fatal().Err(err).Msg("seed zones")
		}
		log.Info().Int("count", len(zones)).Msg("seeded zones")
	}

	log.Info().Msg("seed complete")
}
