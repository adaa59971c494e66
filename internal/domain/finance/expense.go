package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paintshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense is a plain outgoing-cost record, outside the stock subsystem
type Expense struct {
	shared.OwnedAggregateRoot
	Date        time.Time       `gorm:"not null;index"`
	Category    string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a new expense record
func NewExpense(date time.Time, category, description string, amount decimal.Decimal, createdBy uuid.UUID) (*Expense, error) {
	if strings.TrimSpace(category) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Expense{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy),
		Date:               date,
		Category:           category,
		Description:        description,
		Amount:             amount,
	}, nil
}

// Update updates the expense's fields
func (e *Expense) Update(date time.Time, category, description string, amount decimal.Decimal) error {
	if strings.TrimSpace(category) == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !date.IsZero() {
		e.Date = date
	}
	e.Category = category
	e.Description = description
	e.Amount = amount
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
