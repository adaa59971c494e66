package journal

import (
	"context"

	"github.com/google/uuid"
	"github.com/paintshop/backend/internal/domain/shared"
)

// PurchaseRepository defines the interface for purchase journal persistence
type PurchaseRepository interface {
	// FindByID finds a purchase by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindAll finds purchases matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)

	// FindForDepletion finds all purchases for a (product, color) key
	// ordered by date ascending, insertion order as tiebreak. The color key
	// matches exactly: nil matches only colorless entries.
	FindForDepletion(ctx context.Context, productID uuid.UUID, colorID *uuid.UUID) ([]Purchase, error)

	// FindOldest finds the oldest purchase for a (product, color) key,
	// shared.ErrNotFound when the key has no entries.
	FindOldest(ctx context.Context, productID uuid.UUID, colorID *uuid.UUID) (*Purchase, error)

	// Create inserts a new purchase entry
	Create(ctx context.Context, purchase *Purchase) error

	// Save persists quantity/price mutations on an existing entry
	Save(ctx context.Context, purchase *Purchase) error

	// Delete removes a purchase entry
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProduct purges all purchases for a product (cascade cleanup)
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error

	// Count counts purchases matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SaleRepository defines the interface for sale journal persistence
type SaleRepository interface {
	// FindByID finds a sale by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindAll finds sales matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// Create inserts a new sale entry
	Create(ctx context.Context, sale *Sale) error

	// Delete removes a sale entry
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
