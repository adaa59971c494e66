package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	ledgerapp "github.com/paintshop/backend/internal/application/ledger"
)

const dateLayout = "2006-01-02"

// LedgerHandler handles vendor ledger endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.POST("", h.Add)
		ledger.GET("/daily", h.Daily)
		ledger.GET("/vendor", h.VendorRange)
		ledger.GET("/day-end", h.DayEndSummary)
		ledger.PUT("/:id/status", h.UpdateStatus)
		ledger.DELETE("/:id", h.Delete)
	}
}

// dateQuery parses a date query parameter, defaulting to today when absent
func dateQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Now(), true
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Add records a ledger entry chained off the vendor's running balance
func (h *LedgerHandler) Add(c *gin.Context) {
	var req ledgerapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tx, err := h.ledgerService.Add(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Daily returns all entries recorded on a calendar day
func (h *LedgerHandler) Daily(c *gin.Context) {
	date, ok := dateQuery(c, "date")
	if !ok {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	entries, err := h.ledgerService.Daily(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// VendorRange returns one vendor's history with boundary balances
func (h *LedgerHandler) VendorRange(c *gin.Context) {
	vendor := c.Query("vendor")
	if vendor == "" {
		h.BadRequest(c, "Missing vendor")
		return
	}

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = &parsed
	}

	result, err := h.ledgerService.VendorRange(c.Request.Context(), vendor, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DayEndSummary returns the per-vendor rollup for one day
func (h *LedgerHandler) DayEndSummary(c *gin.Context) {
	date, ok := dateQuery(c, "date")
	if !ok {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	summary, err := h.ledgerService.DayEndSummary(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// UpdateStatus changes an entry's settlement status without touching balances
func (h *LedgerHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req ledgerapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tx, err := h.ledgerService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// Delete removes an entry. Later balances are left as recorded.
func (h *LedgerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.ledgerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
