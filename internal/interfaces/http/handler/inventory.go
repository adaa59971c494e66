package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/paintshop/backend/internal/application/inventory"
)

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	ColorID   *uuid.UUID      `json:"color_id"`
	Delta     decimal.Decimal `json:"delta" binding:"required"`
}

// UpdateMinStockRequest represents a reorder threshold change
type UpdateMinStockRequest struct {
	MinStockLevel decimal.Decimal `json:"min_stock_level" binding:"required"`
}

// InventoryHandler handles stock level endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService  *inventoryapp.InventoryService
	adjustmentService *inventoryapp.AdjustmentService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService, adjustmentService *inventoryapp.AdjustmentService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService:  inventoryService,
		adjustmentService: adjustmentService,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.GET("", h.List)
		stock.GET("/low", h.LowStock)
		stock.POST("/adjust", h.Adjust)
		stock.PUT("/:id/min-stock", h.UpdateMinStock)
	}
}

// List returns one stock row per active product, including products
// that have never been stocked.
func (h *InventoryHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	rows, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// LowStock returns rows at or below their reorder threshold
func (h *InventoryHandler) LowStock(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	rows, err := h.inventoryService.LowStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Adjust applies a signed quantity delta to a stock level
func (h *InventoryHandler) Adjust(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	level, err := h.adjustmentService.Adjust(c.Request.Context(), req.ProductID, req.ColorID, req.Delta, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, level)
}

// UpdateMinStock changes a stock level's reorder threshold
func (h *InventoryHandler) UpdateMinStock(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid stock level ID")
		return
	}

	var req UpdateMinStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	level, err := h.inventoryService.UpdateMinStock(c.Request.Context(), id, req.MinStockLevel)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, level)
}
