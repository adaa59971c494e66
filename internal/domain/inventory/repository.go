package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paintshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Adjustment describes a signed quantity delta for one (product, color) key
type Adjustment struct {
	ProductID uuid.UUID
	ColorID   *uuid.UUID
	Delta     decimal.Decimal
	Actor     uuid.UUID
	At        time.Time
}

// StockLevelRepository defines the interface for stock ledger persistence.
// UpsertAdd is the only quantity mutation path; everything else is reads
// and threshold maintenance.
type StockLevelRepository interface {
	// FindByID finds a stock row by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockLevel, error)

	// FindByKey finds the stock row for a (product, color) key
	FindByKey(ctx context.Context, productID uuid.UUID, colorID *uuid.UUID) (*StockLevel, error)

	// FindAll finds stock rows matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockLevel, error)

	// FindByProduct finds all stock rows for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]StockLevel, error)

	// FindLowStock finds persisted rows with 0 < quantity <= min_stock_level
	FindLowStock(ctx context.Context, filter shared.Filter) ([]StockLevel, error)

	// UpsertAdd applies the adjustment as a single conditional statement:
	// insert the row (quantity clamped at >= 0) or atomically add the delta
	// to the existing row's quantity. Concurrent calls for the same key must
	// not lose updates. Transient write conflicts are surfaced as
	// shared.ErrConcurrencyConflict for the caller's retry protocol.
	UpsertAdd(ctx context.Context, adj Adjustment) (*StockLevel, error)

	// Save persists threshold changes on an existing row
	Save(ctx context.Context, level *StockLevel) error

	// DeleteByProduct purges all stock rows for a product (cascade cleanup)
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error

	// Count counts stock rows matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
