package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/paintshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Purchase is one incoming stock event in the purchase journal.
//
// Quantity is mutated downward in place as sales consume the lot oldest
// first: the stored value is the remaining undepleted units, not the
// original purchased amount. TotalAmount keeps the original money figure.
type Purchase struct {
	shared.OwnedAggregateRoot
	Date        time.Time       `gorm:"not null;index:idx_purchase_depletion,priority:3"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_purchase_depletion,priority:1"`
	ColorID     *uuid.UUID      `gorm:"type:uuid;index:idx_purchase_depletion,priority:2"`
	Supplier    string          `gorm:"type:varchar(200)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase journal entry
func NewPurchase(
	date time.Time,
	productID uuid.UUID,
	colorID *uuid.UUID,
	supplier string,
	quantity, unitPrice decimal.Decimal,
	createdBy uuid.UUID,
) (*Purchase, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Purchase quantity must be at least 1")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Purchase{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy),
		Date:               date,
		ProductID:          productID,
		ColorID:            colorID,
		Supplier:           supplier,
		Quantity:           quantity,
		UnitPrice:          unitPrice,
		TotalAmount:        quantity.Mul(unitPrice).Round(2),
	}, nil
}

// Revise replaces quantity and unit price, recomputing the total.
// Returns the signed stock delta (new quantity minus old) the caller must
// apply to the stock ledger.
func (p *Purchase) Revise(quantity, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity.LessThan(decimal.NewFromInt(1)) {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Purchase quantity must be at least 1")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	delta := quantity.Sub(p.Quantity)
	p.Quantity = quantity
	p.UnitPrice = unitPrice
	p.TotalAmount = quantity.Mul(unitPrice).Round(2)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return delta, nil
}

// Deduct consumes up to the remaining quantity and returns the amount taken
func (p *Purchase) Deduct(want decimal.Decimal) decimal.Decimal {
	taken := decimal.Min(want, p.Quantity)
	if taken.IsPositive() {
		p.Quantity = p.Quantity.Sub(taken)
		p.UpdatedAt = time.Now()
		p.IncrementVersion()
	}
	return taken
}

// Restore adds depleted units back to this lot
func (p *Purchase) Restore(quantity decimal.Decimal) {
	if quantity.IsPositive() {
		p.Quantity = p.Quantity.Add(quantity)
		p.UpdatedAt = time.Now()
		p.IncrementVersion()
	}
}
