package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/paintshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultMinStockLevel is applied to lazily created and virtual rows.
var DefaultMinStockLevel = decimal.NewFromInt(5)

// NoColor is the sentinel stored in place of SQL NULL so the unique
// (product, color) index treats "no color variant" as one distinct key.
var NoColor = uuid.Nil

// StockLevel holds the current on-hand quantity for one (product, color)
// pair. It is the aggregate root of the stock ledger; quantity is mutated
// only through the repository's atomic upsert-increment, never by
// read-modify-write.
type StockLevel struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_color,priority:1"`
	// ColorID is NoColor (zero UUID) for the colorless variant.
	ColorID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_color,priority:2"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStockLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:5"`
	LastUpdated   time.Time       `gorm:"not null"`
	UpdatedBy     uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// ColorKey normalizes an optional color reference into the stored key value.
func ColorKey(colorID *uuid.UUID) uuid.UUID {
	if colorID == nil {
		return NoColor
	}
	return *colorID
}

// HasColor reports whether the row tracks a real color variant
func (s *StockLevel) HasColor() bool {
	return s.ColorID != NoColor
}

// ColorRef returns the color as an optional reference for serialization
func (s *StockLevel) ColorRef() *uuid.UUID {
	if s.ColorID == NoColor {
		return nil
	}
	id := s.ColorID
	return &id
}

// NewStockLevel creates a stock row for a (product, color) pair.
// Initial quantity is clamped at zero; only increments may drive it negative.
func NewStockLevel(productID uuid.UUID, colorID *uuid.UUID, quantity decimal.Decimal, updatedBy uuid.UUID) (*StockLevel, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	if quantity.IsNegative() {
		quantity = decimal.Zero
	}

	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ColorID:           ColorKey(colorID),
		Quantity:          quantity,
		MinStockLevel:     DefaultMinStockLevel,
		LastUpdated:       time.Now(),
		UpdatedBy:         updatedBy,
	}, nil
}

// SetMinStockLevel sets the low-stock alert threshold
func (s *StockLevel) SetMinStockLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock level cannot be negative")
	}
	s.MinStockLevel = level
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsLowStock reports the low-stock condition: positive quantity at or below
// the threshold. Exactly-zero rows are out of stock, not low stock.
func (s *StockLevel) IsLowStock() bool {
	return s.Quantity.IsPositive() && s.Quantity.LessThanOrEqual(s.MinStockLevel)
}
