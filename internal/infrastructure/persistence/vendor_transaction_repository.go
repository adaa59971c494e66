package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/paintshop/backend/internal/domain/ledger"
	"github.com/paintshop/backend/internal/domain/shared"
)

// GormVendorTransactionRepository implements VendorTransactionRepository using GORM
type GormVendorTransactionRepository struct {
	db *gorm.DB
}

// NewGormVendorTransactionRepository creates a new GormVendorTransactionRepository
func NewGormVendorTransactionRepository(db *gorm.DB) *GormVendorTransactionRepository {
	return &GormVendorTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormVendorTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.VendorTransaction, error) {
	var tx ledger.VendorTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// LastClosingBefore returns the closing balance of the vendor's latest
// transaction dated strictly before the cutoff. Insertion order breaks
// date ties so the balance chain stays deterministic.
func (r *GormVendorTransactionRepository) LastClosingBefore(ctx context.Context, vendor string, cutoff time.Time) (decimal.Decimal, bool, error) {
	var tx ledger.VendorTransaction
	err := r.db.WithContext(ctx).
		Where("vendor = ? AND date < ?", vendor, cutoff).
		Order("date DESC, created_at DESC, id DESC").
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	return tx.ClosingBalance, true, nil
}

// FindByDateRange finds all transactions with date in [from, to)
func (r *GormVendorTransactionRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]ledger.VendorTransaction, error) {
	var txs []ledger.VendorTransaction
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC, created_at ASC, id ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByVendor finds transactions for one vendor, optionally bounded by [from, to)
func (r *GormVendorTransactionRepository) FindByVendor(ctx context.Context, vendor string, from, to *time.Time) ([]ledger.VendorTransaction, error) {
	var txs []ledger.VendorTransaction
	query := r.db.WithContext(ctx).Where("vendor = ?", vendor)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date < ?", *to)
	}
	if err := query.Order("date ASC, created_at ASC, id ASC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Create inserts a new transaction
func (r *GormVendorTransactionRepository) Create(ctx context.Context, tx *ledger.VendorTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// Save persists status mutations on an existing transaction
func (r *GormVendorTransactionRepository) Save(ctx context.Context, tx *ledger.VendorTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// Delete removes a transaction
func (r *GormVendorTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.VendorTransaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.VendorTransactionRepository = (*GormVendorTransactionRepository)(nil)
