package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintshop/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Type          string           `json:"type" binding:"required,oneof=gallon dibbi quarter p drum other"`
	Code          string           `json:"code" binding:"max=50"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Discount      *decimal.Decimal `json:"discount"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Type          *string          `json:"type" binding:"omitempty,oneof=gallon dibbi quarter p drum other"`
	Code          *string          `json:"code" binding:"omitempty,max=50"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Discount      *decimal.Decimal `json:"discount"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Code          string          `json:"code,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Discount      decimal.Decimal `json:"discount"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateColorRequest represents a request to create a new color
type CreateColorRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	CodeName string `json:"code_name" binding:"required,min=1,max=50"`
	HexCode  string `json:"hex_code" binding:"required"`
}

// UpdateColorRequest represents a request to update a color's display fields
type UpdateColorRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	HexCode string `json:"hex_code" binding:"required"`
}

// ColorResponse represents a color in API responses
type ColorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CodeName  string    `json:"code_name"`
	HexCode   string    `json:"hex_code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Type:          p.Type.String(),
		Code:          p.Code,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Discount:      p.Discount,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToColorResponse converts a domain Color to ColorResponse
func ToColorResponse(c *catalog.Color) ColorResponse {
	return ColorResponse{
		ID:        c.ID,
		Name:      c.Name,
		CodeName:  c.CodeName,
		HexCode:   c.HexCode,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

// ToColorResponses converts a slice of domain Colors
func ToColorResponses(colors []catalog.Color) []ColorResponse {
	responses := make([]ColorResponse, len(colors))
	for i := range colors {
		responses[i] = ToColorResponse(&colors[i])
	}
	return responses
}
