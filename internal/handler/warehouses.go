package handler

import (
	"net/http"

	"smartstock/internal/dto"
	"smartstock/internal/service"

	"github.com/gin-gonic/gin"
)

type WarehousesHandler struct{ svc service.WarehouseService }

func NewWarehousesHandler(svc service.WarehouseService) *WarehousesHandler {
	return &WarehousesHandler{svc: svc}
}

func (h *WarehousesHandler) Create(c *gin.Context) {
	var req dto.CreateWarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WarehousesHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehousesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehousesHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateWarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehousesHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Zones ────────────────────────────────────────────────────────────────────

func (h *WarehousesHandler) CreateZone(c *gin.Context) {
	warehouseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateZoneRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateZone(c.Request.Context(), warehouseID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WarehousesHandler) ListZones(c *gin.Context) {
	warehouseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListZones(c.Request.Context(), warehouseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehousesHandler) GetZone(c *gin.Context) {
	zoneID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetZone(c.Request.Context(), zoneID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehousesHandler) UpdateZone(c *gin.Context) {
	zoneID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateZoneRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateZone(c.Request.Context(), zoneID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehousesHandler) DeleteZone(c *gin.Context) {
	zoneID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteZone(c.Request.Context(), zoneID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
