package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/paintshop/backend/internal/domain/inventory"
	"github.com/paintshop/backend/internal/domain/shared"
)

// GormStockLevelRepository implements StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindByID finds a stock row by its ID
func (r *GormStockLevelRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).First(&level, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByKey finds the stock row for a (product, color) key
func (r *GormStockLevelRepository) FindByKey(ctx context.Context, productID uuid.UUID, colorID *uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND color_id = ?", productID, inventory.ColorKey(colorID)).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindAll finds stock rows matching the filter
func (r *GormStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockLevel{}), filter)
	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindByProduct finds all stock rows for a product
func (r *GormStockLevelRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("color_id ASC").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindLowStock finds persisted rows with 0 < quantity <= min_stock_level
func (r *GormStockLevelRepository) FindLowStock(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockLevel{}).
			Where("quantity > 0 AND quantity <= min_stock_level"),
		filter,
	)
	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// UpsertAdd applies the adjustment as a single INSERT ... ON CONFLICT DO
// UPDATE statement. The insert side clamps a negative delta to a zero row;
// the update side adds the raw delta to the existing quantity, so only
// increments on an existing row can drive it negative.
func (r *GormStockLevelRepository) UpsertAdd(ctx context.Context, adj inventory.Adjustment) (*inventory.StockLevel, error) {
	level, err := inventory.NewStockLevel(adj.ProductID, adj.ColorID, adj.Delta, adj.Actor)
	if err != nil {
		return nil, err
	}
	if !adj.At.IsZero() {
		level.LastUpdated = adj.At
	}

	lastUpdated := level.LastUpdated
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "color_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":     gorm.Expr("stock_levels.quantity + ?", adj.Delta),
				"last_updated": lastUpdated,
				"updated_by":   adj.Actor,
				"updated_at":   time.Now(),
				"version":      gorm.Expr("stock_levels.version + 1"),
			}),
		}).
		Create(level).Error
	if err != nil {
		return nil, mapWriteConflict(err)
	}

	// Re-read so callers see the post-adjustment quantity regardless of
	// which side of the upsert ran.
	return r.FindByKey(ctx, adj.ProductID, adj.ColorID)
}

// Save persists threshold changes on an existing row with optimistic locking
func (r *GormStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	result := r.db.WithContext(ctx).
		Model(level).
		Where("id = ? AND version = ?", level.ID, level.Version-1).
		Updates(map[string]interface{}{
			"min_stock_level": level.MinStockLevel,
			"version":         level.Version,
			"updated_at":      level.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteByProduct purges all stock rows for a product
func (r *GormStockLevelRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&inventory.StockLevel{}, "product_id = ?", productID).Error
}

// Count counts stock rows matching the filter
func (r *GormStockLevelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockLevel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStockLevelRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockSortFields, "product_id")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormStockLevelRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "color_id":
			if value == nil {
				query = query.Where("color_id = ?", inventory.NoColor)
			} else {
				query = query.Where("color_id = ?", value)
			}
		case "low_stock":
			if value == true {
				query = query.Where("quantity > 0 AND quantity <= min_stock_level")
			}
		}
	}
	return query
}

// mapWriteConflict surfaces transient Postgres write conflicts as
// shared.ErrConcurrencyConflict so callers can retry the statement.
func mapWriteConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return shared.ErrConcurrencyConflict
		}
	}
	// SQLite surfaces contention as "database is locked"
	if strings.Contains(err.Error(), "database is locked") {
		return shared.ErrConcurrencyConflict
	}
	return err
}

var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
