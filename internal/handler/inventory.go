package handler

import (
	"net/http"

	"smartstock/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Overview lists every product with its derived total and status.
func (h *InventoryHandler) Overview(c *gin.Context) {
	resp, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alerts lists products that are low-stock or out-of-stock.
func (h *InventoryHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.LowStockAlerts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ZoneItems lists the inventory rows currently held by one zone.
func (h *InventoryHandler) ZoneItems(c *gin.Context) {
	zoneID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ZoneItems(c.Request.Context(), zoneID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
