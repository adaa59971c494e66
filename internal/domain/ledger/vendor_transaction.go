package ledger

import (
	"strings"
	"time"

	"github.com/paintshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a vendor ledger transaction
type TransactionType string

const (
	// TransactionTypePayable represents money owed to the vendor (balance decrease)
	TransactionTypePayable TransactionType = "payable"
	// TransactionTypeReceivable represents money owed by the vendor (balance increase)
	TransactionTypeReceivable TransactionType = "receivable"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionTypePayable || t == TransactionTypeReceivable
}

// TransactionStatus represents the lifecycle status of a ledger transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// IsValid returns true if the status is valid
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusCancelled:
		return true
	}
	return false
}

// VendorTransaction is one link in a vendor's running-balance chain.
// For entries ordered by date, each opening balance equals the closing
// balance of the latest transaction dated strictly before the start of this
// entry's day (0 when none exists). Status changes and deletions never
// recompute the chain of later entries.
type VendorTransaction struct {
	shared.BaseAggregateRoot
	Date           time.Time         `gorm:"not null;index:idx_ledger_vendor_date,priority:2;index"`
	Vendor         string            `gorm:"type:varchar(200);not null;index:idx_ledger_vendor_date,priority:1"`
	Description    string            `gorm:"type:text"`
	Type           TransactionType   `gorm:"type:varchar(20);not null"`
	Amount         decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	OpeningBalance decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	ClosingBalance decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Status         TransactionStatus `gorm:"type:varchar(20);not null;default:'completed'"`
}

// TableName returns the table name for GORM
func (VendorTransaction) TableName() string {
	return "vendor_transactions"
}

// NewVendorTransaction creates a ledger entry chained off the given opening
// balance. The closing balance is opening + amount for receivables and
// opening - amount for payables.
func NewVendorTransaction(
	date time.Time,
	vendor string,
	txType TransactionType,
	amount decimal.Decimal,
	description string,
	openingBalance decimal.Decimal,
) (*VendorTransaction, error) {
	if strings.TrimSpace(vendor) == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor name cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Transaction type must be payable or receivable")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	closing := openingBalance.Sub(amount)
	if txType == TransactionTypeReceivable {
		closing = openingBalance.Add(amount)
	}

	return &VendorTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Vendor:            strings.TrimSpace(vendor),
		Description:       description,
		Type:              txType,
		Amount:            amount,
		OpeningBalance:    openingBalance,
		ClosingBalance:    closing,
		Status:            TransactionStatusCompleted,
	}, nil
}

// SetStatus transitions the entry's status
func (t *VendorTransaction) SetStatus(status TransactionStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be pending, completed or cancelled")
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}
