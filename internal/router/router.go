package router

import (
	"time"

	"smartstock/internal/config"
	"smartstock/internal/handler"
	"smartstock/internal/live"
	"smartstock/internal/middleware"
	"smartstock/internal/repository"
	"smartstock/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB / Bus
func New(cfg *config.Config, db *gorm.DB, bus *live.Bus) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db, bus)
	categoryRepo := repository.NewCategoryRepository(db, bus)
	warehouseRepo := repository.NewWarehouseRepository(db, bus)
	zoneRepo := repository.NewZoneRepository(db, bus)
	inventoryRepo := repository.NewInventoryRepository(db, bus)
	transactionRepo := repository.NewTransactionRepository(db, bus)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo, inventoryRepo, zoneRepo, bus)
	categorySvc := service.NewCategoryService(categoryRepo)
	warehouseSvc := service.NewWarehouseService(warehouseRepo, zoneRepo)
	stockSvc := service.NewStockService(productRepo, zoneRepo, inventoryRepo, transactionRepo, bus)
	inventorySvc := service.NewInventoryService(productRepo, inventoryRepo, zoneRepo, cfg.DefaultReorderPoint)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc, inventorySvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	warehousesH := handler.NewWarehousesHandler(warehouseSvc)
	stockH := handler.NewStockHandler(stockSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, bus))

	v1 := r.Group("/v1")
	{
		// Reactive read surface
		v1.GET("/events", handler.Events(bus))

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
			products.GET("/:id/stock", productsH.Stock)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", categoriesH.Create)
			categories.GET("", categoriesH.List)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		warehouses := v1.Group("/warehouses")
		{
			warehouses.POST("", warehousesH.Create)
			warehouses.GET("", warehousesH.List)
			warehouses.GET("/:id", warehousesH.GetByID)
			warehouses.PUT("/:id", warehousesH.Update)
			warehouses.DELETE("/:id", warehousesH.Delete)
			warehouses.POST("/:id/zones", warehousesH.CreateZone)
			warehouses.GET("/:id/zones", warehousesH.ListZones)
		}

		zones := v1.Group("/zones")
		{
			zones.GET("/:id", warehousesH.GetZone)
			zones.PUT("/:id", warehousesH.UpdateZone)
			zones.DELETE("/:id", warehousesH.DeleteZone)
			zones.GET("/:id/items", inventoryH.ZoneItems)
		}

		stock := v1.Group("/stock")
		{
			stock.POST("/in", stockH.StockIn)
			stock.POST("/out", stockH.StockOut)
			stock.GET("/transactions", stockH.ListTransactions)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("", inventoryH.Overview)
			inventory.GET("/alerts", inventoryH.Alerts)
		}
	}

	return r
}
