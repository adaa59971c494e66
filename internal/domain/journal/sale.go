package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/paintshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	minSaleQuantity = decimal.NewFromFloat(0.5)
	hundred         = decimal.NewFromInt(100)
)

// Sale is one outgoing stock event in the sale journal. Sales are immutable
// once created; deletion reverses their stock and depletion effects.
type Sale struct {
	shared.OwnedAggregateRoot
	Date         time.Time       `gorm:"not null;index"`
	CustomerName string          `gorm:"type:varchar(200)"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ColorID      *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Discount     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// SaleTotal computes quantity * unitPrice * (1 - discount/100), rounded to
// 2 decimals. Rounding happens only here, at the money boundary.
func SaleTotal(quantity, unitPrice, discount decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discount.Div(hundred))
	return quantity.Mul(unitPrice).Mul(factor).Round(2)
}

// NewSale creates a new sale journal entry
func NewSale(
	date time.Time,
	customerName string,
	productID uuid.UUID,
	colorID *uuid.UUID,
	quantity, unitPrice, discount decimal.Decimal,
	createdBy uuid.UUID,
) (*Sale, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThan(minSaleQuantity) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Sale quantity must be at least 0.5")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Sale{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy),
		Date:               date,
		CustomerName:       customerName,
		ProductID:          productID,
		ColorID:            colorID,
		Quantity:           quantity,
		UnitPrice:          unitPrice,
		Discount:           discount,
		TotalAmount:        SaleTotal(quantity, unitPrice, discount),
	}, nil
}
