package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paintshop/backend/internal/domain/finance"
	"github.com/paintshop/backend/internal/domain/shared"
)

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Date        time.Time       `json:"date"`
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=2000"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	Date        time.Time       `json:"date"`
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=2000"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToExpenseResponse converts a domain Expense
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of domain Expenses
func ToExpenseResponses(expenses []finance.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// ExpenseService manages plain outgoing-cost records
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{expenseRepo: expenseRepo, logger: logger}
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest, actor uuid.UUID) (*ExpenseResponse, error) {
	expense, err := finance.NewExpense(req.Date, req.Category, req.Description, req.Amount, actor)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Update updates an existing expense
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := expense.Update(req.Date, req.Category, req.Description, req.Amount); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}

// GetByID returns one expense
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List returns expenses matching the filter with pagination metadata
func (s *ExpenseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ExpenseResponse], error) {
	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.expenseRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToExpenseResponses(expenses), total, filter.Page, filter.PageSize)
	return &result, nil
}

// TotalByCategory sums expense amounts per category over [from, to)
func (s *ExpenseService) TotalByCategory(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	filter := shared.Filter{Filters: map[string]interface{}{
		"date_from": from,
		"date_to":   to,
	}}
	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals, nil
}
