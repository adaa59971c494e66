package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintshop/backend/internal/domain/journal"
)

// CreatePurchaseRequest represents a request to record a purchase
type CreatePurchaseRequest struct {
	Date      time.Time       `json:"date"`
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	ColorID   *uuid.UUID      `json:"color_id"`
	Supplier  string          `json:"supplier" binding:"max=200"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdatePurchaseRequest represents a request to revise a purchase entry
type UpdatePurchaseRequest struct {
	Date      *time.Time       `json:"date"`
	Supplier  *string          `json:"supplier" binding:"omitempty,max=200"`
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	ProductID   uuid.UUID       `json:"product_id"`
	ColorID     *uuid.UUID      `json:"color_id,omitempty"`
	Supplier    string          `json:"supplier"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customer_name" binding:"max=200"`
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	ColorID      *uuid.UUID      `json:"color_id"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
	Discount     decimal.Decimal `json:"discount"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID           uuid.UUID       `json:"id"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customer_name"`
	ProductID    uuid.UUID       `json:"product_id"`
	ColorID      *uuid.UUID      `json:"color_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Discount     decimal.Decimal `json:"discount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateSaleResult carries the recorded sale plus any non-fatal warnings,
// such as the purchase journal running dry during depletion.
type CreateSaleResult struct {
	Sale     SaleResponse `json:"sale"`
	Warnings []string     `json:"warnings,omitempty"`
}

// ToPurchaseResponse converts a domain Purchase to PurchaseResponse
func ToPurchaseResponse(p *journal.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:          p.ID,
		Date:        p.Date,
		ProductID:   p.ProductID,
		ColorID:     p.ColorID,
		Supplier:    p.Supplier,
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice,
		TotalAmount: p.TotalAmount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPurchaseResponses converts a slice of domain Purchases
func ToPurchaseResponses(purchases []journal.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i])
	}
	return responses
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *journal.Sale) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		Date:         s.Date,
		CustomerName: s.CustomerName,
		ProductID:    s.ProductID,
		ColorID:      s.ColorID,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		Discount:     s.Discount,
		TotalAmount:  s.TotalAmount,
		CreatedAt:    s.CreatedAt,
	}
}

// ToSaleResponses converts a slice of domain Sales
func ToSaleResponses(sales []journal.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}
