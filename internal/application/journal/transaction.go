package journal

import (
	"context"

	"github.com/paintshop/backend/internal/domain/catalog"
	"github.com/paintshop/backend/internal/domain/inventory"
	"github.com/paintshop/backend/internal/domain/journal"
)

// TransactionalRepositories provides access to the repositories a journal
// flow mutates, all scoped to one database transaction.
type TransactionalRepositories interface {
	Purchases() journal.PurchaseRepository
	Sales() journal.SaleRepository
	Stock() inventory.StockLevelRepository
	Products() catalog.ProductRepository
}

// TransactionScope executes a function atomically. Journal entries and
// their stock adjustments either all commit or all roll back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
