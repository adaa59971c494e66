package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paintshop/backend/internal/domain/catalog"
	"github.com/paintshop/backend/internal/domain/shared"
)

// GormColorRepository implements ColorRepository using GORM
type GormColorRepository struct {
	db *gorm.DB
}

// NewGormColorRepository creates a new GormColorRepository
func NewGormColorRepository(db *gorm.DB) *GormColorRepository {
	return &GormColorRepository{db: db}
}

// FindByID finds a color by its ID
func (r *GormColorRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Color, error) {
	var color catalog.Color
	if err := r.db.WithContext(ctx).First(&color, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &color, nil
}

// FindByCodeName finds an active color by its uppercase code name
func (r *GormColorRepository) FindByCodeName(ctx context.Context, codeName string) (*catalog.Color, error) {
	var color catalog.Color
	if err := r.db.WithContext(ctx).
		Where("code_name = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(codeName)), true).
		First(&color).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &color, nil
}

// FindActive finds all active colors
func (r *GormColorRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Color, error) {
	var colors []catalog.Color
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Color{}).Where("is_active = ?", true),
		filter,
	)
	if err := query.Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// Save creates or updates a color
func (r *GormColorRepository) Save(ctx context.Context, color *catalog.Color) error {
	return r.db.WithContext(ctx).Save(color).Error
}

// Count counts colors matching the filter
func (r *GormColorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Color{}).Where("is_active = ?", true)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code_name ILIKE ?", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormColorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code_name ILIKE ?", pattern, pattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, ColorSortFields, "name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	return query
}

var _ catalog.ColorRepository = (*GormColorRepository)(nil)
