package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paintshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductType represents the container variant a product is sold in
type ProductType string

const (
	ProductTypeGallon  ProductType = "gallon"
	ProductTypeDibbi   ProductType = "dibbi"
	ProductTypeQuarter ProductType = "quarter"
	ProductTypeP       ProductType = "p"
	ProductTypeDrum    ProductType = "drum"
	ProductTypeOther   ProductType = "other"
)

// IsValid checks if the product type is a known variant
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeGallon, ProductTypeDibbi, ProductTypeQuarter,
		ProductTypeP, ProductTypeDrum, ProductTypeOther:
		return true
	}
	return false
}

// String returns the string representation of ProductType
func (t ProductType) String() string {
	return string(t)
}

// Product represents a paint product in the catalog.
// Deactivated products are kept for history; related stock and purchase
// rows are purged as a cascading cleanup when the product is deactivated.
type Product struct {
	shared.OwnedAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	Type          ProductType     `gorm:"type:varchar(20);not null;default:'other'"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	// Code joins Color.CodeName to auto-resolve a color variant on sale.
	Code     string `gorm:"type:varchar(50);index"`
	IsActive bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, productType ProductType, createdBy uuid.UUID) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown product type")
	}

	return &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy),
		Name:               name,
		Type:               productType,
		PurchasePrice:      decimal.Zero,
		SalePrice:          decimal.Zero,
		Discount:           decimal.Zero,
		IsActive:           true,
	}, nil
}

// SetPrices sets purchase and sale prices
func (p *Product) SetPrices(purchasePrice, salePrice decimal.Decimal) error {
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.PurchasePrice = purchasePrice
	p.SalePrice = salePrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetDiscount sets the default discount percentage
func (p *Product) SetDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100")
	}
	p.Discount = discount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetCode sets the color-resolution code, normalized to uppercase
func (p *Product) SetCode(code string) {
	p.Code = strings.ToUpper(strings.TrimSpace(code))
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// RecordPurchasePrice updates the purchase price from the latest purchase
func (p *Product) RecordPurchasePrice(unitPrice decimal.Decimal) {
	if unitPrice.IsPositive() {
		p.PurchasePrice = unitPrice
		p.UpdatedAt = time.Now()
		p.IncrementVersion()
	}
}

// Deactivate soft-deletes the product
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
