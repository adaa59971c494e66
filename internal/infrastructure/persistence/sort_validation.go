package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is invalid, empty, or not in
// the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"type":           true,
	"code":           true,
	"purchase_price": true,
	"sale_price":     true,
}

// ColorSortFields contains allowed sort fields for colors
var ColorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"code_name":  true,
}

// StockSortFields contains allowed sort fields for stock rows
var StockSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"product_id":      true,
	"quantity":        true,
	"min_stock_level": true,
	"last_updated":    true,
}

// PurchaseSortFields contains allowed sort fields for purchases
var PurchaseSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"date":         true,
	"supplier":     true,
	"quantity":     true,
	"unit_price":   true,
	"total_amount": true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"date":          true,
	"customer_name": true,
	"quantity":      true,
	"total_amount":  true,
}

// LedgerSortFields contains allowed sort fields for vendor transactions
var LedgerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"date":       true,
	"vendor":     true,
	"amount":     true,
	"status":     true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"date":       true,
	"category":   true,
	"amount":     true,
}

// ContactSortFields contains allowed sort fields for contacts
var ContactSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"name":       true,
	"type":       true,
}
