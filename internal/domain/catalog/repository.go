package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/paintshop/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActive finds all active products
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ColorRepository defines the interface for color persistence
type ColorRepository interface {
	// FindByID finds a color by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Color, error)

	// FindByCodeName finds an active color by its uppercase code name
	FindByCodeName(ctx context.Context, codeName string) (*Color, error)

	// FindActive finds all active colors
	FindActive(ctx context.Context, filter shared.Filter) ([]Color, error)

	// Save creates or updates a color
	Save(ctx context.Context, color *Color) error

	// Count counts colors matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
