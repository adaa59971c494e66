package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorTransactionRepository defines the interface for ledger persistence
type VendorTransactionRepository interface {
	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*VendorTransaction, error)

	// LastClosingBefore returns the closing balance of the latest
	// transaction for the vendor dated strictly before the cutoff
	// (insertion order breaks date ties). found is false when the vendor
	// has no transaction before the cutoff.
	LastClosingBefore(ctx context.Context, vendor string, cutoff time.Time) (balance decimal.Decimal, found bool, err error)

	// FindByDateRange finds all transactions with date in [from, to),
	// ordered by date ascending
	FindByDateRange(ctx context.Context, from, to time.Time) ([]VendorTransaction, error)

	// FindByVendor finds transactions for one vendor ordered by date
	// ascending, optionally bounded by [from, to)
	FindByVendor(ctx context.Context, vendor string, from, to *time.Time) ([]VendorTransaction, error)

	// Create inserts a new transaction
	Create(ctx context.Context, tx *VendorTransaction) error

	// Save persists status mutations on an existing transaction
	Save(ctx context.Context, tx *VendorTransaction) error

	// Delete removes a transaction outright
	Delete(ctx context.Context, id uuid.UUID) error
}
