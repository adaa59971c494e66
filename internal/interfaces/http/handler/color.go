package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/paintshop/backend/internal/application/catalog"
)

// ColorHandler handles color catalog endpoints
type ColorHandler struct {
	BaseHandler
	colorService *catalogapp.ColorService
}

// NewColorHandler creates a new ColorHandler
func NewColorHandler(colorService *catalogapp.ColorService) *ColorHandler {
	return &ColorHandler{colorService: colorService}
}

// RegisterRoutes registers color routes
func (h *ColorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	colors := rg.Group("/colors")
	{
		colors.POST("", h.Create)
		colors.GET("", h.List)
		colors.GET("/:id", h.GetByID)
		colors.PUT("/:id", h.Update)
		colors.DELETE("/:id", h.Delete)
	}
}

func (h *ColorHandler) Create(c *gin.Context) {
	var req catalogapp.CreateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	color, err := h.colorService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, color)
}

func (h *ColorHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.colorService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

func (h *ColorHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid color ID")
		return
	}

	color, err := h.colorService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, color)
}

func (h *ColorHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid color ID")
		return
	}

	var req catalogapp.UpdateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	color, err := h.colorService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, color)
}

func (h *ColorHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid color ID")
		return
	}

	if err := h.colorService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
