package handler

import (
	"net/http"
	"strconv"

	"smartstock/internal/dto"
	"smartstock/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

func (h *StockHandler) StockIn(c *gin.Context) {
	var req dto.StockOperationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.StockIn(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) StockOut(c *gin.Context) {
	var req dto.StockOperationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.StockOut(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := dto.TransactionFilter{
		ProductID:   queryUint(c, "productId"),
		ZoneID:      queryUint(c, "zoneId"),
		WarehouseID: queryUint(c, "warehouseId"),
		Type:        c.Query("type"),
		Page:        page,
		Limit:       limit,
	}
	resp, err := h.svc.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
