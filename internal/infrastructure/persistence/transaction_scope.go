package persistence

import (
	"context"

	"gorm.io/gorm"

	appjournal "github.com/paintshop/backend/internal/application/journal"
	"github.com/paintshop/backend/internal/domain/catalog"
	"github.com/paintshop/backend/internal/domain/inventory"
	"github.com/paintshop/backend/internal/domain/journal"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appjournal.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Purchases returns the purchase repository scoped to the current transaction
func (r *gormTransactionalRepositories) Purchases() journal.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// Sales returns the sale repository scoped to the current transaction
func (r *gormTransactionalRepositories) Sales() journal.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// Stock returns the stock level repository scoped to the current transaction
func (r *gormTransactionalRepositories) Stock() inventory.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

var _ appjournal.TransactionScope = (*GormTransactionScope)(nil)
var _ appjournal.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
