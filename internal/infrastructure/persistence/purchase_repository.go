package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paintshop/backend/internal/domain/inventory"
	"github.com/paintshop/backend/internal/domain/journal"
	"github.com/paintshop/backend/internal/domain/shared"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*journal.Purchase, error) {
	var purchase journal.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]journal.Purchase, error) {
	var purchases []journal.Purchase
	query := r.applyFilter(r.db.WithContext(ctx).Model(&journal.Purchase{}), filter)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindForDepletion finds purchases for a (product, color) key ordered
// oldest first, insertion order breaking date ties. The color key matches
// exactly: a nil key returns only colorless entries.
func (r *GormPurchaseRepository) FindForDepletion(ctx context.Context, productID uuid.UUID, colorID *uuid.UUID) ([]journal.Purchase, error) {
	var purchases []journal.Purchase
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	query = applyColorKey(query, colorID)
	if err := query.Order("date ASC, created_at ASC, id ASC").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindOldest finds the oldest purchase for a (product, color) key
func (r *GormPurchaseRepository) FindOldest(ctx context.Context, productID uuid.UUID, colorID *uuid.UUID) (*journal.Purchase, error) {
	var purchase journal.Purchase
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	query = applyColorKey(query, colorID)
	if err := query.Order("date ASC, created_at ASC, id ASC").First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// Create inserts a new purchase entry
func (r *GormPurchaseRepository) Create(ctx context.Context, purchase *journal.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// Save persists quantity/price mutations on an existing entry
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *journal.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

// Delete removes a purchase entry
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&journal.Purchase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProduct purges all purchases for a product
func (r *GormPurchaseRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&journal.Purchase{}, "product_id = ?", productID).Error
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&journal.Purchase{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PurchaseSortFields, "date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormPurchaseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("supplier ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "supplier":
			query = query.Where("supplier = ?", value)
		case "date_from":
			query = query.Where("date >= ?", value)
		case "date_to":
			query = query.Where("date < ?", value)
		}
	}
	return query
}

// applyColorKey filters journal rows on the exact color key. Journal
// entries store a nullable color reference, unlike stock rows where the
// key is collapsed to the NoColor sentinel.
func applyColorKey(query *gorm.DB, colorID *uuid.UUID) *gorm.DB {
	if colorID == nil || *colorID == inventory.NoColor {
		return query.Where("color_id IS NULL")
	}
	return query.Where("color_id = ?", *colorID)
}

var _ journal.PurchaseRepository = (*GormPurchaseRepository)(nil)
